package gogoanime

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/phrazzld/gogoanime-api/internal/provider"
)

var categoryPaths = map[provider.Category]string{
	provider.CategoryMovie:   "/anime-movies.html",
	provider.CategoryONA:     "/ona.html",
	provider.CategoryOVA:     "/ova.html",
	provider.CategorySpecial: "/special.html",
	provider.CategoryTV:      "/tv-series.html",
}

// Search finds titles matching query.
func (c *Client) Search(ctx context.Context, query string, page int) (*provider.Page, error) {
	page = pageOrDefault(page)
	q := url.Values{}
	q.Set("keyword", query)
	q.Set("page", strconv.Itoa(page))
	return c.fetchListing(ctx, c.baseURL+"/search.html?"+q.Encode(), page)
}

// FetchLatestCompleted lists recently completed series.
func (c *Client) FetchLatestCompleted(ctx context.Context, page int) (*provider.Page, error) {
	return c.fetchPagedListing(ctx, "/completed-anime.html", page)
}

// FetchNewReleases lists the titles of the running season.
func (c *Client) FetchNewReleases(ctx context.Context, page int) (*provider.Page, error) {
	return c.fetchPagedListing(ctx, "/new-season.html", page)
}

// GenreSearch lists titles of one genre.
func (c *Client) GenreSearch(ctx context.Context, genre string, page int) (*provider.Page, error) {
	return c.fetchPagedListing(ctx, "/genre/"+url.PathEscape(genre), page)
}

// FetchCategory lists titles of one category.
func (c *Client) FetchCategory(ctx context.Context, category provider.Category, page int) (*provider.Page, error) {
	path, ok := categoryPaths[category]
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", provider.ErrNotFound, category)
	}
	return c.fetchPagedListing(ctx, path, page)
}

// FetchRecentlyUpdated lists the latest released episodes.
func (c *Client) FetchRecentlyUpdated(ctx context.Context, page int) (*provider.Page, error) {
	page = pageOrDefault(page)
	rawURL := fmt.Sprintf("%s/ajax/page-recent-release.html?page=%d&type=1", c.ajaxURL, page)

	doc, err := c.fetchDocument(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	results := make([]provider.AnimeResult, 0)
	doc.Find("ul.items li").Each(func(_ int, li *goquery.Selection) {
		link := li.Find("p.name a")
		href, _ := link.Attr("href")
		episodeID := strings.Trim(href, "/ ")
		if episodeID == "" {
			return
		}

		id := episodeID
		if i := strings.LastIndex(episodeID, "-episode-"); i > 0 {
			id = episodeID[:i]
		}

		title := titleOf(link)
		results = append(results, provider.AnimeResult{
			ID:            id,
			Title:         title,
			URL:           c.absolute(href),
			Image:         imageOf(li.Find("div.img img")),
			SubOrDub:      subOrDubOf(title, episodeID),
			EpisodeID:     episodeID,
			EpisodeNumber: firstInt(li.Find("p.episode").Text()),
		})
	})

	return &provider.Page{
		CurrentPage: page,
		HasNextPage: hasNextPage(doc),
		Results:     results,
	}, nil
}

func (c *Client) fetchPagedListing(ctx context.Context, path string, page int) (*provider.Page, error) {
	page = pageOrDefault(page)
	return c.fetchListing(ctx, fmt.Sprintf("%s%s?page=%d", c.baseURL, path, page), page)
}

func (c *Client) fetchListing(ctx context.Context, rawURL string, page int) (*provider.Page, error) {
	doc, err := c.fetchDocument(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	return &provider.Page{
		CurrentPage: page,
		HasNextPage: hasNextPage(doc),
		TotalPages:  totalPages(doc),
		Results:     c.parseItems(doc.Find("div.last_episodes ul.items li")),
	}, nil
}

func (c *Client) parseItems(items *goquery.Selection) []provider.AnimeResult {
	results := make([]provider.AnimeResult, 0, items.Length())
	items.Each(func(_ int, li *goquery.Selection) {
		link := li.Find("p.name a")
		href, _ := link.Attr("href")
		id := strings.TrimPrefix(strings.TrimSpace(href), "/category/")
		if id == "" {
			return
		}

		title := titleOf(link)
		released := strings.TrimSpace(li.Find("p.released").Text())
		released = strings.TrimSpace(strings.TrimPrefix(released, "Released:"))

		results = append(results, provider.AnimeResult{
			ID:          id,
			Title:       title,
			URL:         c.absolute(href),
			Image:       imageOf(li.Find("div.img img")),
			ReleaseDate: released,
			SubOrDub:    subOrDubOf(title, id),
		})
	})
	return results
}

func hasNextPage(doc *goquery.Document) bool {
	return doc.Find("ul.pagination-list li.selected").Next().Length() > 0
}

func totalPages(doc *goquery.Document) int {
	total := 0
	doc.Find("ul.pagination-list li a").Each(func(_ int, a *goquery.Selection) {
		if n, err := strconv.Atoi(strings.TrimSpace(a.Text())); err == nil && n > total {
			total = n
		}
	})
	return total
}

func titleOf(link *goquery.Selection) string {
	if title, ok := link.Attr("title"); ok && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}
	return strings.TrimSpace(link.Text())
}

func imageOf(img *goquery.Selection) string {
	if src, ok := img.Attr("data-src"); ok && src != "" {
		return src
	}
	src, _ := img.Attr("src")
	return src
}

func subOrDubOf(title, id string) string {
	if strings.Contains(strings.ToLower(title), "(dub)") || strings.Contains(id, "-dub") {
		return string(provider.Dub)
	}
	return string(provider.Sub)
}
