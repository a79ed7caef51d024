package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"deepsight/internal/config"
	"deepsight/internal/engine"
	"deepsight/internal/scorer"
	"deepsight/internal/system"
)

var buildVersion = "dev"

func main() {
	system.InitResourceLimits()

	inputPtr := flag.String("input", "", "Media file or directory to scan (default: newest media file in input/)")
	reportPtr := flag.String("report", "", "Write results to a JSON report file")
	policyPtr := flag.String("policy", "default", "Built-in policy: default, aggressive, conservative")
	policyFilePtr := flag.String("policy-file", "", "Load policy from a YAML file (overrides -policy)")
	exportPolicyPtr := flag.String("export-policy", "", "Write the selected policy to a YAML file and exit")
	framesPtr := flag.Int("frames", 5, "Frames sampled per video")
	workersPtr := flag.Int("workers", 0, "Concurrent assets (0 = auto from CPU/memory)")
	timeoutPtr := flag.Duration("timeout", 2*time.Minute, "Per-asset processing timeout")
	seedPtr := flag.Int64("seed", 0, "Jitter seed (0 = time-based)")
	deterministicPtr := flag.Bool("deterministic", false, "Disable score jitter")
	verbosePtr := flag.Bool("v", false, "Print per-signal breakdown")

	flag.Parse()

	policy, err := config.PolicyByName(*policyPtr)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}
	if *policyFilePtr != "" {
		loaded, err := config.ReadPolicy(*policyFilePtr)
		if err != nil {
			log.Fatalf("[-] Failed to load policy file: %v", err)
		}
		policy = *loaded
	}

	if *exportPolicyPtr != "" {
		if err := config.WritePolicy(&policy, *exportPolicyPtr); err != nil {
			log.Fatalf("[-] Failed to export policy: %v", err)
		}
		fmt.Printf("[+++] Policy %q written to %s\n", policy.Name, *exportPolicyPtr)
		return
	}

	inputPath := *inputPtr
	if inputPath == "" {
		latest, err := system.FindLatestMedia("input")
		if err != nil {
			log.Fatalf("[-] %v. Pass -input or drop media into input/", err)
		}
		inputPath = latest
		fmt.Printf("[*] Selected file: %s\n", inputPath)
	}

	paths, err := collectAssets(inputPath)
	if err != nil {
		log.Fatalf("[-] %v", err)
	}

	workers := *workersPtr
	if workers == 0 {
		workers = system.DetectWorkers()
	}

	cfg := &config.Config{
		InputPath:     inputPath,
		ReportPath:    *reportPtr,
		PolicyName:    policy.Name,
		PolicyFile:    *policyFilePtr,
		FrameCount:    *framesPtr,
		Workers:       workers,
		AssetTimeout:  *timeoutPtr,
		Seed:          *seedPtr,
		Deterministic: *deterministicPtr,
		Verbose:       *verbosePtr,
		BuildVersion:  buildVersion,
	}

	fmt.Println("--- [DEEPSIGHT SCAN] ---")
	fmt.Printf("[*] Assets: %d | Policy: %s | Workers: %d | Frames/video: %d\n",
		len(paths), policy.Name, workers, cfg.FrameCount)
	fmt.Println("------------------------")

	eng := engine.New(cfg, policy)
	if err := eng.Warmup(); err != nil {
		log.Fatalf("[-] Warmup failed: %v", err)
	}

	start := time.Now()
	results := eng.ProcessBatch(context.Background(), paths)

	flagged := 0
	for _, r := range results {
		marker := " "
		if r.IsDeepfake {
			marker = "!"
			flagged++
		}
		fmt.Printf("[%s] %-40s %6.1f%%  %-8s %7.1fms\n",
			marker, r.FileName, r.Confidence, r.ThreatLevel, r.ProcessingTime)
		if cfg.Verbose {
			fmt.Printf("    face=%.1f temporal=%.1f artifact=%.1f quality=%.1f\n",
				r.Analysis.FaceDetection, r.Analysis.TemporalConsistency,
				r.Analysis.ArtifactDetection, r.Analysis.ImageQuality)
		}
		if r.Error != "" {
			fmt.Printf("    skipped: %s\n", r.Error)
		}
	}

	fmt.Printf("[*] Done: %d assets in %.2fs, %d flagged\n",
		len(results), time.Since(start).Seconds(), flagged)

	if cfg.ReportPath != "" {
		if err := scorer.WriteReport(results, cfg.ReportPath); err != nil {
			log.Fatalf("[-] Failed to write report: %v", err)
		}
		fmt.Printf("[+++] Report saved: %s\n", cfg.ReportPath)
	}
}

func collectAssets(path string) ([]string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !fi.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() && system.IsMediaFile(entry.Name()) {
			paths = append(paths, filepath.Join(path, entry.Name()))
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no media files found in %s", path)
	}
	return paths, nil
}
