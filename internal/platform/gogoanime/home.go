package gogoanime

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/phrazzld/gogoanime-api/internal/provider"
)

// FetchRecentlyAdded lists the series the origin's home page reports as added.
// The home page is not paginated, so only the first page has results.
func (c *Client) FetchRecentlyAdded(ctx context.Context, page int) (*provider.Page, error) {
	page = pageOrDefault(page)
	result := &provider.Page{CurrentPage: page, Results: []provider.AnimeResult{}}
	if page > 1 {
		return result, nil
	}

	doc, err := c.fetchDocument(ctx, c.baseURL+"/home.html")
	if err != nil {
		return nil, err
	}

	doc.Find("div.added_series_body ul.listing li a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		id := strings.TrimPrefix(strings.TrimSpace(href), "/category/")
		if id == "" {
			return
		}
		title := titleOf(a)
		result.Results = append(result.Results, provider.AnimeResult{
			ID:       id,
			Title:    title,
			URL:      c.absolute(href),
			SubOrDub: subOrDubOf(title, id),
		})
	})

	return result, nil
}

// FetchGenres lists the genres linked from the home page menu.
func (c *Client) FetchGenres(ctx context.Context) ([]provider.Genre, error) {
	doc, err := c.fetchDocument(ctx, c.baseURL+"/home.html")
	if err != nil {
		return nil, err
	}

	genres := make([]provider.Genre, 0)
	doc.Find("nav.genre ul li a").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		id := strings.TrimPrefix(strings.TrimSpace(href), "/genre/")
		if id == "" {
			return
		}
		genres = append(genres, provider.Genre{ID: id, Title: titleOf(a)})
	})

	return genres, nil
}

// FetchSpotlight returns the featured slider of the home page.
func (c *Client) FetchSpotlight(ctx context.Context) (*provider.Spotlight, error) {
	doc, err := c.fetchDocument(ctx, c.baseURL+"/home.html")
	if err != nil {
		return nil, err
	}

	spotlight := &provider.Spotlight{Results: []provider.SpotlightEntry{}}
	doc.Find("#slider .deslide-item").Each(func(i int, item *goquery.Selection) {
		href, _ := item.Find(".desi-buttons a").Last().Attr("href")
		id := strings.TrimPrefix(strings.TrimSpace(href), "/category/")
		spotlight.Results = append(spotlight.Results, provider.SpotlightEntry{
			ID:          id,
			Title:       strings.TrimSpace(item.Find(".desi-head-title").Text()),
			Description: strings.TrimSpace(item.Find(".desi-description").Text()),
			Banner:      imageOf(item.Find(".film-poster-img")),
			URL:         c.absolute(href),
			Rank:        i + 1,
		})
	})

	return spotlight, nil
}

// FetchSchedule returns the episodes airing on date.
func (c *Client) FetchSchedule(ctx context.Context, date string) (*provider.Schedule, error) {
	q := url.Values{}
	q.Set("tzOffset", "0")
	q.Set("date", date)

	doc, err := c.fetchFragment(ctx, c.baseURL+"/ajax/schedule/list?"+q.Encode())
	if err != nil {
		return nil, err
	}

	schedule := &provider.Schedule{Date: date, Results: []provider.ScheduleEntry{}}
	doc.Find("li a.tsl-link").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		schedule.Results = append(schedule.Results, provider.ScheduleEntry{
			ID:            strings.Trim(href, "/ "),
			Title:         strings.TrimSpace(a.Find(".film-name").Text()),
			AiringTime:    strings.TrimSpace(a.Find(".time").Text()),
			AiringEpisode: strings.TrimSpace(a.Find(".fd-play button").Text()),
		})
	})

	return schedule, nil
}

// FetchSearchSuggestions returns the origin's search-as-you-type hits.
func (c *Client) FetchSearchSuggestions(ctx context.Context, query string) (*provider.Suggestions, error) {
	q := url.Values{}
	q.Set("keyword", query)

	doc, err := c.fetchFragment(ctx, c.baseURL+"/ajax/search/suggest?"+q.Encode())
	if err != nil {
		return nil, err
	}

	suggestions := &provider.Suggestions{Results: []provider.Suggestion{}}
	doc.Find("a.nav-item").Not(".nav-bottom").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		id := strings.Trim(strings.SplitN(href, "?", 2)[0], "/ ")
		id = strings.TrimPrefix(id, "category/")
		if id == "" {
			return
		}
		suggestions.Results = append(suggestions.Results, provider.Suggestion{
			ID:          id,
			Title:       strings.TrimSpace(a.Find(".film-name").Text()),
			Image:       imageOf(a.Find(".film-poster-img")),
			ReleaseDate: strings.TrimSpace(a.Find(".film-infor span").First().Text()),
			URL:         c.absolute(strings.SplitN(href, "?", 2)[0]),
		})
	})

	return suggestions, nil
}
