package gogoanime

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/phrazzld/gogoanime-api/internal/provider"
)

// FetchAnimeInfo scrapes the category page of a title and loads its episode list.
func (c *Client) FetchAnimeInfo(ctx context.Context, id string) (*provider.AnimeInfo, error) {
	id = strings.TrimPrefix(strings.Trim(id, "/ "), "category/")
	pageURL := c.baseURL + "/category/" + url.PathEscape(id)

	doc, err := c.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	body := doc.Find("div.anime_info_body_bg")
	if body.Length() == 0 {
		return nil, fmt.Errorf("%w: no anime with id %q", provider.ErrNotFound, id)
	}

	info := &provider.AnimeInfo{
		ID:       id,
		Title:    strings.TrimSpace(body.Find("h1").First().Text()),
		URL:      pageURL,
		Image:    imageOf(body.Find("img").First()),
		SubOrDub: provider.SubOrDub(subOrDubOf(body.Find("h1").First().Text(), id)),
		Genres:   []string{},
	}

	body.Find("p.type").Each(func(_ int, p *goquery.Selection) {
		label := strings.TrimSpace(p.Find("span").First().Text())
		value := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(p.Text()), label))

		switch strings.TrimSuffix(label, ":") {
		case "Type":
			info.Type = strings.TrimSpace(p.Find("a").First().Text())
			if info.Type == "" {
				info.Type = value
			}
		case "Plot Summary":
			info.Description = value
		case "Genre":
			p.Find("a").Each(func(_ int, a *goquery.Selection) {
				genre := strings.Trim(titleOf(a), ", ")
				if genre != "" {
					info.Genres = append(info.Genres, genre)
				}
			})
		case "Released":
			info.ReleaseDate = value
		case "Status":
			info.Status = strings.TrimSpace(p.Find("a").First().Text())
			if info.Status == "" {
				info.Status = value
			}
		case "Other name":
			info.OtherName = value
		}
	})
	if info.Description == "" {
		info.Description = strings.TrimSpace(body.Find("div.description").Text())
	}

	episodes, err := c.fetchEpisodeList(ctx, doc)
	if err != nil {
		return nil, err
	}
	info.Episodes = episodes
	info.TotalEpisodes = len(episodes)

	return info, nil
}

// fetchEpisodeList loads the ajax episode list referenced by a category page.
func (c *Client) fetchEpisodeList(ctx context.Context, doc *goquery.Document) ([]provider.Episode, error) {
	movieID, _ := doc.Find("#movie_id").Attr("value")
	alias, _ := doc.Find("#alias_anime").Attr("value")
	if movieID == "" {
		return []provider.Episode{}, nil
	}

	epEnd := "0"
	if last, ok := doc.Find("#episode_page li a").Last().Attr("ep_end"); ok {
		epEnd = last
	}

	q := url.Values{}
	q.Set("ep_start", "0")
	q.Set("ep_end", epEnd)
	q.Set("id", movieID)
	q.Set("default_ep", "0")
	q.Set("alias", alias)

	list, err := c.fetchDocument(ctx, c.ajaxURL+"/ajax/load-list-episode?"+q.Encode())
	if err != nil {
		return nil, err
	}

	links := list.Find("#episode_related li a")
	episodes := make([]provider.Episode, 0, links.Length())
	links.Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		episodeID := strings.Trim(href, "/ ")
		if episodeID == "" {
			return
		}
		number := episodeNumber(a.Find("div.name").Text())
		episodes = append(episodes, provider.Episode{
			ID:     episodeID,
			Number: number,
			URL:    c.absolute(strings.TrimSpace(href)),
		})
	})

	// The origin lists the newest episode first.
	for i, j := 0, len(episodes)-1; i < j; i, j = i+1, j-1 {
		episodes[i], episodes[j] = episodes[j], episodes[i]
	}

	return episodes, nil
}

// episodeNumber parses labels like "EP 12.5". Anything that is not a finite
// number is 0, since NaN and Inf cannot be encoded as JSON.
func episodeNumber(label string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(label), "EP")), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}
