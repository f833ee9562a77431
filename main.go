package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"cpu-scheduler/api"
	"cpu-scheduler/config"
	"cpu-scheduler/internal/telemetry"
)

func main() {
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	pflag.CommandLine.AddGoFlagSet(klogFlags)

	configPath := pflag.String("config", "", "path to the yaml config file (default ./config.yaml if present)")
	pflag.Int("port", 9095, "port the api listens on")
	pflag.Int("quantum", 2, "round-robin time quantum")
	input := pflag.String("input", "", "CSV file of processes (id,burst,arrival[,priority]); prints the schedule and exits")
	random := pflag.Int("random", 0, "generate this many random processes; prints the schedule and exits")
	seed := pflag.Uint64("seed", 0, "seed for --random (0 picks one from the clock)")
	algorithm := pflag.String("algorithm", "all", "algorithm for --input/--random: fcfs, sjf, srtf, rr, mlfq or all")
	pflag.Parse()

	os.Exit(run(*configPath, *input, *random, *seed, *algorithm))
}

func run(configPath, input string, random int, seed uint64, algorithm string) int {
	defer klog.Flush()

	cfg, err := config.Load(configPath, pflag.CommandLine)
	if err != nil {
		klog.ErrorS(err, "loading config")
		return 1
	}

	if input != "" || random > 0 {
		if err := printReport(os.Stdout, cfg, input, random, seed, algorithm); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	app := api.NewApp(cfg, telemetry.NewRecorder())
	klog.InfoS("starting scheduler api", "port", cfg.Port)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		klog.ErrorS(err, "api stopped")
		return 1
	}
	return 0
}
