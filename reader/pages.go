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

package reader

import (
	"context"
	"runtime"
	"sync"

	"seehuhn.de/go/pagetext/content"
	"seehuhn.de/go/pagetext/resource"
)

// PageInput is the content of one page.
type PageInput struct {
	Resources resource.Store
	Content   []content.Operator
}

// ReadPages interprets several pages in parallel.  The result has one entry
// for every input page, in the same order.
//
// The resource stores may be shared between pages.  If ctx is cancelled,
// ReadPages stops between two operators and returns ctx.Err().  In this case
// the result holds the pages which were completed.
func ReadPages(ctx context.Context, pages []PageInput, opt *Options) ([]*Page, error) {
	workers := runtime.GOMAXPROCS(0)
	if opt != nil && opt.Workers > 0 {
		workers = opt.Workers
	}

	res := make([]*Page, len(pages))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

loop:
	for i := range pages {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			break loop
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			r := New(pages[i].Resources, opt)
			for _, op := range pages[i].Content {
				if ctx.Err() != nil {
					return
				}
				r.Step(op)
			}
			res[i] = r.Finish()
		}(i)
	}

	wg.Wait()
	return res, ctx.Err()
}
