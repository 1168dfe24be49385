package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/chromafix/chromafix"
	"github.com/chromafix/chromafix/cvd"
	"github.com/chromafix/chromafix/search"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

var _ = fmt.Print

var (
	clrTitle = color.New(color.FgCyan, color.Bold)
	clrDim   = color.New(color.FgHiBlack)
	clrGood  = color.New(color.FgGreen)
)

func env_or(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func env_int(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	ans, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}
	return ans, nil
}

func swatch(c chromafix.RGB) string {
	return color.BgRGB(int(c.R), int(c.G), int(c.B)).Sprint("    ")
}

func print_palettes(res *chromafix.Result) {
	before, after := chromafix.Simulate(res.Input, res.Deficiency), chromafix.Simulate(res.Palette, res.Deficiency)
	drift := res.Drift()
	fmt.Println(clrTitle.Sprintf("%-4s %-16s %-16s   %-16s %-16s %s", "#", "input", "seen", "output", "seen", "ΔE00"))
	for i, c := range res.Input {
		o := res.Palette[i]
		fmt.Printf("%-4d %s %s %s %s → %s %s %s %s %5.2f\n", i+1,
			swatch(c), c.AsSharp(), swatch(before[i]), before[i].AsSharp(),
			swatch(o), o.AsSharp(), swatch(after[i]), after[i].AsSharp(), drift[i])
	}
}

func print_closest(label string, p chromafix.Palette, d cvd.Deficiency) {
	i, j, dist := chromafix.ClosestPair(p, d)
	if i < 0 {
		return
	}
	fmt.Println(clrDim.Sprintf("%s: closest pair %s and %s at %.4f", label, p[i].AsSharp(), p[j].AsSharp(), dist))
}

func main() {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
			os.Exit(1)
		}
	}()
	// .env is optional
	_ = godotenv.Load()
	seed, err := env_int("CHROMAFIX_SEED", 1)
	if err != nil {
		return
	}
	budget, err := env_int("CHROMAFIX_BUDGET", 150)
	if err != nil {
		return
	}
	cvd_name := flag.String("cvd", env_or("CHROMAFIX_CVD", "protan"), "deficiency to optimize for: none, protan or deutan")
	seed_flag := flag.Uint64("seed", uint64(seed), "seed of the random perturbations")
	budget_flag := flag.Int("budget", budget, "search iterations per palette color")
	max_phase := flag.Int("max-phase", 3, "length of every worst-color phase, per palette color")
	palette_selection := flag.Bool("palette-selection", false, "pick tabu moves by palette error instead of the error of the moved color")
	apng_path := flag.String("apng", "", "write an animated PNG of the optimization to this file")
	verbose := flag.Bool("v", false, "log every search phase to stderr")
	show_version := flag.Bool("version", false, "print the version and exit")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: chromafix [options] color color...")
		fmt.Fprintln(flag.CommandLine.Output(), "colors are #rgb, #rrggbb or CSS color names")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *show_version {
		fmt.Println("chromafix", chromafix.Version)
		return
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	d, err := cvd.ParseDeficiency(*cvd_name)
	if err != nil {
		return
	}
	palette, err := chromafix.ParsePalette(flag.Args())
	if err != nil {
		return
	}
	opts := []chromafix.Option{chromafix.Seed(*seed_flag), chromafix.IterationsPerColor(*budget_flag), chromafix.MaxPhasePerColor(*max_phase)}
	if *palette_selection {
		opts = append(opts, chromafix.TabuSelection(search.PaletteError))
	}
	if *verbose {
		opts = append(opts, chromafix.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}
	start := time.Now()
	res := chromafix.Run(palette, d, opts...)
	print_palettes(res)
	print_closest("before", res.Input, d)
	print_closest("after", res.Palette, d)
	fmt.Println(clrGood.Sprintf("error %.4f → %.4f in %d iterations, %d phases, %s",
		res.InitialError, res.Error, res.Iterations, len(res.Phases), time.Since(start).Round(time.Millisecond)))
	if *apng_path != "" {
		out, cerr := os.Create(*apng_path)
		if cerr != nil {
			err = cerr
			return
		}
		err = res.EncodeAPNG(out, 32, 600*time.Millisecond)
		errc := out.Close()
		if err == nil {
			err = errc
		}
		if err != nil {
			return
		}
		fmt.Println("Animation saved to:", *apng_path)
	}
}
