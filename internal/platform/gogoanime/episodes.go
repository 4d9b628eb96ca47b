package gogoanime

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/phrazzld/gogoanime-api/internal/provider"
)

// serverKeys maps streaming servers to the class the origin gives their link.
var serverKeys = map[provider.StreamingServer]string{
	provider.ServerVidStreaming: "anime",
	provider.ServerGogoCDN:      "vidcdn",
	provider.ServerStreamSB:     "streamsb",
	provider.ServerMp4Upload:    "mp4upload",
	provider.ServerStreamWish:   "streamwish",
	provider.ServerVidHide:      "vidhide",
	provider.ServerFilemoon:     "filemoon",
	provider.ServerMixDrop:      "mixdrop",
	provider.ServerVoe:          "voe",
}

type serverLink struct {
	key  string
	name string
	url  string
}

// FetchEpisodeServers lists the video hosts of an episode.
func (c *Client) FetchEpisodeServers(ctx context.Context, episodeID string, subOrDub provider.SubOrDub) ([]provider.EpisodeServer, error) {
	links, _, err := c.fetchEpisodePage(ctx, episodeID, subOrDub)
	if err != nil {
		return nil, err
	}

	servers := make([]provider.EpisodeServer, 0, len(links))
	for _, l := range links {
		servers = append(servers, provider.EpisodeServer{Name: l.name, URL: l.url})
	}
	return servers, nil
}

// FetchEpisodeSources returns the embed of the requested server, vidstreaming by default.
func (c *Client) FetchEpisodeSources(ctx context.Context, episodeID string, server provider.StreamingServer, subOrDub provider.SubOrDub) (*provider.Sources, error) {
	if server == "" {
		server = provider.ServerVidStreaming
	}
	key, ok := serverKeys[server]
	if !ok {
		return nil, fmt.Errorf("%w: server %s is not offered by this provider", provider.ErrNotFound, server)
	}

	links, doc, err := c.fetchEpisodePage(ctx, episodeID, subOrDub)
	if err != nil {
		return nil, err
	}

	for _, l := range links {
		if l.key != key {
			continue
		}
		download, _ := doc.Find("li.dowloads a").First().Attr("href")
		return &provider.Sources{
			Headers: map[string]string{"Referer": l.url},
			Sources: []provider.Video{{
				URL:     l.url,
				Quality: "default",
				IsM3U8:  strings.Contains(l.url, ".m3u8"),
				IsEmbed: true,
			}},
			Download: download,
		}, nil
	}

	return nil, fmt.Errorf("%w: server %s not found for episode %s", provider.ErrNotFound, server, episodeID)
}

func (c *Client) fetchEpisodePage(ctx context.Context, episodeID string, subOrDub provider.SubOrDub) ([]serverLink, *goquery.Document, error) {
	episodeID = episodePath(strings.Trim(episodeID, "/ "), subOrDub)

	doc, err := c.fetchDocument(ctx, c.baseURL+"/"+url.PathEscape(episodeID))
	if err != nil {
		return nil, nil, err
	}

	items := doc.Find("div.anime_muti_link ul li")
	if items.Length() == 0 {
		return nil, nil, fmt.Errorf("%w: no episode with id %q", provider.ErrNotFound, episodeID)
	}

	links := make([]serverLink, 0, items.Length())
	items.Each(func(_ int, li *goquery.Selection) {
		a := li.Find("a").First()
		video, _ := a.Attr("data-video")
		if video == "" {
			return
		}
		name := strings.TrimSpace(strings.Replace(a.Text(), "Choose this server", "", 1))
		links = append(links, serverLink{
			key:  strings.TrimSpace(li.AttrOr("class", "")),
			name: name,
			url:  c.absolute(video),
		})
	})

	return links, doc, nil
}

// episodePath rewrites a sub episode id to its dubbed counterpart when a dub is requested.
func episodePath(episodeID string, subOrDub provider.SubOrDub) string {
	if subOrDub != provider.Dub || strings.Contains(episodeID, "-dub-episode-") {
		return episodeID
	}
	return strings.Replace(episodeID, "-episode-", "-dub-episode-", 1)
}
