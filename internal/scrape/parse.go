// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package scrape

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Book is one cleaned catalogue record, ready for a sink.
type Book struct {
	Title       string
	Author      string
	Description string
	Price       float64
	Stock       int
	Rating      int
	ImageURL    string
	ProductURL  string
}

// listing is the raw yield of one catalogue page.
type listing struct {
	books []Book
	// next is the absolute URL of the following page, empty on the last.
	next string
}

var (
	priceRe = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	stockRe = regexp.MustCompile(`(\d+)`)

	// fallbackSkipRe matches paragraphs that are product metadata rather
	// than prose, so the description fallback skips past them.
	fallbackSkipRe = regexp.MustCompile(`(?i)(UPC|£|In stock|Tax)`)
)

// ratingWords maps the star-rating class word to its numeric value.
var ratingWords = map[string]int{
	"Zero":  0,
	"One":   1,
	"Two":   2,
	"Three": 3,
	"Four":  4,
	"Five":  5,
}

// parsePrice pulls the first decimal number out of a price label like
// "£51.77". Unparseable input is a zero price, not an error; one bad card
// must not sink a page of fifty.
func parsePrice(text string) float64 {
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return v
}

// parseStock reads an availability label. "In stock (19 available)" carries
// a count; a bare "In stock" means at least one copy.
func parseStock(text string) int {
	if m := stockRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if strings.Contains(strings.ToLower(text), "in stock") {
		return 1
	}
	return 0
}

// parseRating reads a class attribute like "star-rating Three".
func parseRating(classAttr string) int {
	for _, word := range strings.Fields(classAttr) {
		if n, ok := ratingWords[word]; ok {
			return n
		}
	}
	return 0
}

// resolveURL makes href absolute against the page it appeared on, the way
// a browser would. Malformed hrefs resolve to empty.
func resolveURL(page *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return page.ResolveReference(ref).String()
}

// collapseSpace normalizes runs of whitespace to single spaces and trims.
func collapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// parseListing extracts the product cards and the next-page link from one
// catalogue page. pageURL is the URL the page was fetched from; relative
// links resolve against it.
//
// The source site lists no authors, so every record carries "Unknown".
func parseListing(r io.Reader, pageURL *url.URL) (*listing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	out := &listing{}
	doc.Find("ol.row li article.product_pod").Each(func(_ int, card *goquery.Selection) {
		anchor := card.Find("h3 a").First()
		title := collapseSpace(anchor.AttrOr("title", ""))
		if title == "" {
			// Short titles skip the attribute and live in the anchor text.
			title = collapseSpace(anchor.Text())
		}
		if title == "" {
			title = "Untitled"
		}

		book := Book{
			Title:  title,
			Author: "Unknown",
			Price:  parsePrice(card.Find(".price_color").First().Text()),
			Stock:  parseStock(card.Find(".availability").First().Text()),
			Rating: parseRating(card.Find("p.star-rating").First().AttrOr("class", "")),
		}
		if href, ok := anchor.Attr("href"); ok {
			book.ProductURL = resolveURL(pageURL, href)
		}
		if src, ok := card.Find("img").First().Attr("src"); ok {
			book.ImageURL = resolveURL(pageURL, src)
		}
		out.books = append(out.books, book)
	})

	if href, ok := doc.Find("li.next a").First().Attr("href"); ok {
		out.next = resolveURL(pageURL, href)
	}
	return out, nil
}

// parseDescription extracts the long description from a product page. The
// canonical layout is a paragraph right after the #product_description
// heading; a few pages omit the heading, so fall back to the first
// substantial prose paragraph in the content area.
func parseDescription(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse product page: %w", err)
	}

	text := collapseSpace(doc.Find("#product_description").NextAllFiltered("p").First().Text())
	if text != "" {
		return text, nil
	}

	doc.Find("#content_inner p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		candidate := collapseSpace(p.Text())
		if len(candidate) >= 20 && !fallbackSkipRe.MatchString(candidate) {
			text = candidate
			return false
		}
		return true
	})
	return text, nil
}
