package main

import (
	"fmt"
	"os"

	"github.com/chromafix/chromafix"
	"github.com/chromafix/chromafix/cvd"
)

var _ = fmt.Print

func main() {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}()
	if len(os.Args) < 3 || len(os.Args) > 4 {
		fmt.Fprintln(os.Stderr, "usage: go run ./cmd/cvdsim protan|deutan input-file [output-file]")
		os.Exit(1)
	}
	d, err := cvd.ParseDeficiency(os.Args[1])
	if err != nil {
		return
	}
	img, err := chromafix.Open(os.Args[2])
	if err != nil {
		return
	}
	output_file := fmt.Sprintf("%s-%s.png", os.Args[2], d)
	if len(os.Args) == 4 {
		output_file = os.Args[3]
	}
	simulated, err := cvd.SimulateImage(img, d)
	if err != nil {
		return
	}
	if err = chromafix.Save(simulated, output_file); err == nil {
		fmt.Println("Simulated image saved to:", output_file)
	}
}
