// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package scrape

import (
	"fmt"
	"net/url"
	"strings"
	"testing"
)

func TestParsePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "pound sign", text: "£51.77", want: 51.77},
		{name: "bare number", text: "23.88", want: 23.88},
		{name: "integer", text: "£45", want: 45},
		{name: "surrounding space", text: "  £10.00  ", want: 10},
		{name: "no number", text: "Free", want: 0},
		{name: "empty", text: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parsePrice(tt.text); got != tt.want {
				t.Errorf("parsePrice(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseStock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "count in parens", text: "In stock (19 available)", want: 19},
		{name: "single copy", text: "In stock (1 available)", want: 1},
		{name: "bare in stock", text: "\n    In stock\n", want: 1},
		{name: "mixed case", text: "IN STOCK", want: 1},
		{name: "out of stock", text: "Out of stock", want: 0},
		{name: "empty", text: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseStock(tt.text); got != tt.want {
				t.Errorf("parseStock(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseRating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		class string
		want  int
	}{
		{name: "three stars", class: "star-rating Three", want: 3},
		{name: "five stars", class: "star-rating Five", want: 5},
		{name: "one star", class: "star-rating One", want: 1},
		{name: "zero stars", class: "star-rating Zero", want: 0},
		{name: "no rating word", class: "star-rating", want: 0},
		{name: "unknown word", class: "star-rating Eleven", want: 0},
		{name: "empty", class: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseRating(tt.class); got != tt.want {
				t.Errorf("parseRating(%q) = %d, want %d", tt.class, got, tt.want)
			}
		})
	}
}

// cardFixture builds one product card the way the source site lays them
// out: image and title anchors relative to the catalogue page, price and
// availability in a product_price block.
type cardFixture struct {
	title  string
	href   string
	img    string
	price  string
	avail  string
	rating string
}

func listingHTML(cards []cardFixture, next string) string {
	var b strings.Builder
	b.WriteString(`<html><body><section><ol class="row">`)
	for _, c := range cards {
		b.WriteString(`<li class="col-xs-6"><article class="product_pod">`)
		fmt.Fprintf(&b, `<div class="image_container"><a href="%s"><img src="%s" class="thumbnail"/></a></div>`, c.href, c.img)
		fmt.Fprintf(&b, `<p class="star-rating %s"></p>`, c.rating)
		fmt.Fprintf(&b, `<h3><a href="%s" title="%s">%s</a></h3>`, c.href, c.title, c.title)
		fmt.Fprintf(&b, `<div class="product_price"><p class="price_color">%s</p><p class="instock availability"><i class="icon-ok"></i>%s</p></div>`, c.price, c.avail)
		b.WriteString(`</article></li>`)
	}
	b.WriteString(`</ol></section>`)
	if next != "" {
		fmt.Fprintf(&b, `<ul class="pager"><li class="next"><a href="%s">next</a></li></ul>`, next)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q) failed: %v", raw, err)
	}
	return u
}

func TestParseListing(t *testing.T) {
	t.Parallel()

	pageURL := mustParseURL(t, "https://books.toscrape.com/catalogue/page-1.html")
	html := listingHTML([]cardFixture{
		{
			title:  "A Light in the Attic",
			href:   "a-light-in-the-attic_1000/index.html",
			img:    "../media/cache/2c/da/2cda.jpg",
			price:  "£51.77",
			avail:  "In stock (22 available)",
			rating: "Three",
		},
		{
			title:  "Tipping the Velvet",
			href:   "tipping-the-velvet_999/index.html",
			img:    "../media/cache/26/0c/260c.jpg",
			price:  "£53.74",
			avail:  "In stock",
			rating: "One",
		},
	}, "page-2.html")

	got, err := parseListing(strings.NewReader(html), pageURL)
	if err != nil {
		t.Fatalf("parseListing failed: %v", err)
	}

	if len(got.books) != 2 {
		t.Fatalf("parsed %d books, want 2", len(got.books))
	}
	if got.next != "https://books.toscrape.com/catalogue/page-2.html" {
		t.Errorf("next = %q, want the resolved page-2 URL", got.next)
	}

	first := got.books[0]
	if first.Title != "A Light in the Attic" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Author != "Unknown" {
		t.Errorf("Author = %q, want %q", first.Author, "Unknown")
	}
	if first.Price != 51.77 {
		t.Errorf("Price = %v, want 51.77", first.Price)
	}
	if first.Stock != 22 {
		t.Errorf("Stock = %d, want 22", first.Stock)
	}
	if first.Rating != 3 {
		t.Errorf("Rating = %d, want 3", first.Rating)
	}
	if want := "https://books.toscrape.com/catalogue/a-light-in-the-attic_1000/index.html"; first.ProductURL != want {
		t.Errorf("ProductURL = %q, want %q", first.ProductURL, want)
	}
	// The ../ prefix climbs out of /catalogue/.
	if want := "https://books.toscrape.com/media/cache/2c/da/2cda.jpg"; first.ImageURL != want {
		t.Errorf("ImageURL = %q, want %q", first.ImageURL, want)
	}

	second := got.books[1]
	if second.Stock != 1 {
		t.Errorf("bare availability Stock = %d, want 1", second.Stock)
	}
	if second.Rating != 1 {
		t.Errorf("Rating = %d, want 1", second.Rating)
	}
}

func TestParseListing_LastPage(t *testing.T) {
	t.Parallel()

	pageURL := mustParseURL(t, "https://books.toscrape.com/catalogue/page-50.html")
	html := listingHTML([]cardFixture{
		{title: "Last Book", href: "last_1/index.html", img: "x.jpg", price: "£9.99", avail: "In stock", rating: "Two"},
	}, "")

	got, err := parseListing(strings.NewReader(html), pageURL)
	if err != nil {
		t.Fatalf("parseListing failed: %v", err)
	}
	if got.next != "" {
		t.Errorf("next = %q, want empty on the last page", got.next)
	}
	if len(got.books) != 1 {
		t.Errorf("parsed %d books, want 1", len(got.books))
	}
}

func TestParseListing_SparseCard(t *testing.T) {
	t.Parallel()

	// A card with no title attribute falls back to the anchor text, and a
	// card missing price and availability yields zeros instead of errors.
	html := `<html><body><ol class="row">
		<li><article class="product_pod">
			<h3><a href="sharp-objects_997/index.html">Sharp Objects</a></h3>
		</article></li>
	</ol></body></html>`

	pageURL := mustParseURL(t, "https://books.toscrape.com/catalogue/page-1.html")
	got, err := parseListing(strings.NewReader(html), pageURL)
	if err != nil {
		t.Fatalf("parseListing failed: %v", err)
	}
	if len(got.books) != 1 {
		t.Fatalf("parsed %d books, want 1", len(got.books))
	}

	book := got.books[0]
	if book.Title != "Sharp Objects" {
		t.Errorf("Title = %q, want anchor text fallback", book.Title)
	}
	if book.Price != 0 || book.Stock != 0 || book.Rating != 0 {
		t.Errorf("sparse card = %+v, want zero price, stock, and rating", book)
	}
	if book.ImageURL != "" {
		t.Errorf("ImageURL = %q, want empty", book.ImageURL)
	}
}

func TestParseListing_Empty(t *testing.T) {
	t.Parallel()

	pageURL := mustParseURL(t, "https://books.toscrape.com/catalogue/page-1.html")
	got, err := parseListing(strings.NewReader("<html><body></body></html>"), pageURL)
	if err != nil {
		t.Fatalf("parseListing failed: %v", err)
	}
	if len(got.books) != 0 || got.next != "" {
		t.Errorf("got %d books, next %q, want none", len(got.books), got.next)
	}
}

func TestParseDescription(t *testing.T) {
	t.Parallel()

	t.Run("canonical layout", func(t *testing.T) {
		t.Parallel()
		html := `<html><body><div id="content_inner"><article class="product_page">
			<div id="product_description" class="sub-header"><h2>Product Description</h2></div>
			<p>A desert planet, a noble family, and   spice beyond price.</p>
		</article></div></body></html>`

		got, err := parseDescription(strings.NewReader(html))
		if err != nil {
			t.Fatalf("parseDescription failed: %v", err)
		}
		if want := "A desert planet, a noble family, and spice beyond price."; got != want {
			t.Errorf("description = %q, want whitespace collapsed %q", got, want)
		}
	})

	t.Run("missing heading falls back to content paragraphs", func(t *testing.T) {
		t.Parallel()
		// No #product_description block. The fallback must skip the
		// metadata paragraphs and land on the prose one.
		html := `<html><body><div id="content_inner">
			<p>£53.74</p>
			<p>In stock (20 available)</p>
			<p>UPC 90fa61229261140a</p>
			<p>An orphaned heroine navigates the drawing rooms of nineteenth century England.</p>
		</div></body></html>`

		got, err := parseDescription(strings.NewReader(html))
		if err != nil {
			t.Fatalf("parseDescription failed: %v", err)
		}
		if !strings.HasPrefix(got, "An orphaned heroine") {
			t.Errorf("description = %q, want the prose paragraph", got)
		}
	})

	t.Run("no description", func(t *testing.T) {
		t.Parallel()
		got, err := parseDescription(strings.NewReader("<html><body><p>hi</p></body></html>"))
		if err != nil {
			t.Fatalf("parseDescription failed: %v", err)
		}
		if got != "" {
			t.Errorf("description = %q, want empty", got)
		}
	})
}

func TestResolveURL(t *testing.T) {
	t.Parallel()

	page := mustParseURL(t, "https://books.toscrape.com/catalogue/page-3.html")

	tests := []struct {
		name string
		href string
		want string
	}{
		{name: "sibling page", href: "page-4.html", want: "https://books.toscrape.com/catalogue/page-4.html"},
		{name: "child path", href: "some-book_12/index.html", want: "https://books.toscrape.com/catalogue/some-book_12/index.html"},
		{name: "parent climb", href: "../media/cache/a.jpg", want: "https://books.toscrape.com/media/cache/a.jpg"},
		{name: "absolute", href: "https://example.com/x", want: "https://example.com/x"},
		{name: "padded", href: "  page-4.html  ", want: "https://books.toscrape.com/catalogue/page-4.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := resolveURL(page, tt.href); got != tt.want {
				t.Errorf("resolveURL(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}
