package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dixieflatline76/Reel/pkg/accent"
	"github.com/dixieflatline76/Reel/pkg/frame"
)

func main() {
	at := flag.Duration("at", 0, "timestamp of the frame to sample")
	thumbOut := flag.String("thumb", "", "write the smart-cropped thumbnail PNG to this file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Usage: accent_probe [-at 1.5s] [-thumb out.png] <video>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	ex := frame.NewExtractor()
	img, err := ex.FrameAt(ctx, path, *at)
	if err != nil {
		fmt.Println("Error extracting frame:", err)
		os.Exit(1)
	}
	c := accent.SampleImage(img)
	fmt.Printf("Frame:    %dx%d at %s\n", img.Bounds().Dx(), img.Bounds().Dy(), *at)
	fmt.Printf("Accent:   %s (%.3f, %.3f, %.3f)\n", c.Hex(), c.R, c.G, c.B)

	if d, err := ex.Duration(ctx, path); err == nil {
		fmt.Printf("Duration: %s\n", d)
	} else {
		fmt.Println("Duration: unknown:", err)
	}

	if *thumbOut != "" {
		data, err := frame.Thumbnail(img, frame.ThumbnailWidth, frame.ThumbnailHeight)
		if err != nil {
			fmt.Println("Error building thumbnail:", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*thumbOut, data, 0644); err != nil {
			fmt.Println("Error writing thumbnail:", err)
			os.Exit(1)
		}
		fmt.Printf("Thumbnail written to %s\n", *thumbOut)
	}
}
