// seehuhn.de/go/pagetext - interpret PDF page content and extract text
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Pagetext extracts the words from decoded PDF content streams.
//
// Each input file holds the decoded content stream of one page.  Fonts are
// assigned to resource names using the -font flag, for example
// "-font F1=Helvetica".  Only the 14 standard fonts are available.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pagetext/content"
	"seehuhn.de/go/pagetext/font"
	"seehuhn.de/go/pagetext/font/standard"
	"seehuhn.de/go/pagetext/layout"
	"seehuhn.de/go/pagetext/reader"
	"seehuhn.de/go/pagetext/resource"
)

func main() {
	fonts := map[pdf.Name]string{}
	flag.Func("font", "map a resource `name=font`, e.g. F1=Helvetica", func(s string) error {
		name, base, ok := strings.Cut(s, "=")
		if !ok || name == "" || base == "" {
			return fmt.Errorf("expected name=font, got %q", s)
		}
		fonts[pdf.Name(name)] = base
		return nil
	})
	letters := flag.Bool("letters", false, "print letters instead of words")
	invisible := flag.Bool("invisible", false, "include invisible text")
	verbose := flag.Bool("v", false, "log warnings to stderr")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] content...\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opt := &reader.Options{IncludeInvisible: *invisible}
	if *verbose {
		opt.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	err := run(ctx, flag.Args(), fonts, opt, *letters)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, files []string, fonts map[pdf.Name]string, opt *reader.Options, letters bool) error {
	res, err := loadFonts(fonts)
	if err != nil {
		return err
	}

	pages := make([]reader.PageInput, len(files))
	for i, fname := range files {
		data, err := os.ReadFile(fname)
		if err != nil {
			return err
		}
		ops, err := content.Parse(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", fname, err)
		}
		pages[i] = reader.PageInput{Resources: res, Content: ops}
	}

	out, err := reader.ReadPages(ctx, pages, opt)
	if err != nil {
		return err
	}

	ex := layout.New(nil)
	for i, page := range out {
		fmt.Printf("# %s\n", files[i])
		if letters {
			for _, l := range page.Letters {
				fmt.Printf("%8.2f %8.2f %-10s %q\n",
					l.StartBaseline.X, l.StartBaseline.Y, l.Orientation, l.Text)
			}
		} else {
			for _, w := range ex.Words(page.Letters) {
				fmt.Printf("%8.2f %8.2f %-10s %s\n",
					w.Bounds.LLx, w.Bounds.LLy, w.Orientation, w.Text)
			}
		}
		if len(page.Warnings) > 0 {
			fmt.Printf("# %d warnings\n", len(page.Warnings))
		}
	}
	return nil
}

func loadFonts(fonts map[pdf.Name]string) (*resource.Map, error) {
	res := &resource.Map{}
	if len(fonts) == 0 {
		return res, nil
	}

	metrics, err := standard.New(nil)
	if err != nil {
		return nil, err
	}
	res.Fonts = make(map[pdf.Name]font.Font, len(fonts))
	for name, base := range fonts {
		m, err := metrics.Metrics(base)
		if err != nil {
			return nil, fmt.Errorf("font %q: %w", name, err)
		}
		res.Fonts[name] = font.NewSimple(&font.SimpleInfo{
			PostScriptName: m.FontName,
			Metrics:        m,
		})
	}
	return res, nil
}
