package provider

// StreamingServer identifies a video host an episode can be streamed from.
type StreamingServer string

// Known streaming servers.
const (
	ServerAsianLoad    StreamingServer = "asianload"
	ServerGogoCDN      StreamingServer = "gogocdn"
	ServerStreamSB     StreamingServer = "streamsb"
	ServerMixDrop      StreamingServer = "mixdrop"
	ServerMp4Upload    StreamingServer = "mp4upload"
	ServerUpCloud      StreamingServer = "upcloud"
	ServerVidCloud     StreamingServer = "vidcloud"
	ServerStreamTape   StreamingServer = "streamtape"
	ServerVizCloud     StreamingServer = "vizcloud"
	ServerMyCloud      StreamingServer = "mycloud"
	ServerFilemoon     StreamingServer = "filemoon"
	ServerVidStreaming StreamingServer = "vidstreaming"
	ServerBuiltIn      StreamingServer = "builtin"
	ServerSmashyStream StreamingServer = "smashystream"
	ServerStreamHub    StreamingServer = "streamhub"
	ServerStreamWish   StreamingServer = "streamwish"
	ServerVidHide      StreamingServer = "vidhide"
	ServerVidMoly      StreamingServer = "vidmoly"
	ServerVoe          StreamingServer = "voe"
	ServerMegaUp       StreamingServer = "megaup"
)

var knownServers = map[StreamingServer]struct{}{
	ServerAsianLoad:    {},
	ServerGogoCDN:      {},
	ServerStreamSB:     {},
	ServerMixDrop:      {},
	ServerMp4Upload:    {},
	ServerUpCloud:      {},
	ServerVidCloud:     {},
	ServerStreamTape:   {},
	ServerVizCloud:     {},
	ServerMyCloud:      {},
	ServerFilemoon:     {},
	ServerVidStreaming: {},
	ServerBuiltIn:      {},
	ServerSmashyStream: {},
	ServerStreamHub:    {},
	ServerStreamWish:   {},
	ServerVidHide:      {},
	ServerVidMoly:      {},
	ServerVoe:          {},
	ServerMegaUp:       {},
}

// IsValid reports whether s is one of the known servers. The comparison is exact.
func (s StreamingServer) IsValid() bool {
	_, ok := knownServers[s]
	return ok
}

// SubOrDub selects the subtitled or dubbed release of an episode.
type SubOrDub string

const (
	Sub SubOrDub = "sub"
	Dub SubOrDub = "dub"
)

// SubOrDubFromFlag maps the dub flag to a SubOrDub.
func SubOrDubFromFlag(dub bool) SubOrDub {
	if dub {
		return Dub
	}
	return Sub
}

// Category is a catalog section browsed by format.
type Category string

const (
	CategoryMovie   Category = "movie"
	CategoryONA     Category = "ona"
	CategoryOVA     Category = "ova"
	CategorySpecial Category = "special"
	CategoryTV      Category = "tv"
)

// Page is one page of a listing.
type Page struct {
	CurrentPage int           `json:"currentPage"`
	HasNextPage bool          `json:"hasNextPage"`
	TotalPages  int           `json:"totalPages,omitempty"`
	Results     []AnimeResult `json:"results"`
}

// AnimeResult is a listing entry. Episode listings fill the episode fields.
type AnimeResult struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	URL           string `json:"url,omitempty"`
	Image         string `json:"image,omitempty"`
	ReleaseDate   string `json:"releaseDate,omitempty"`
	SubOrDub      string `json:"subOrDub,omitempty"`
	EpisodeID     string `json:"episodeId,omitempty"`
	EpisodeNumber int    `json:"episodeNumber,omitempty"`
}

// AnimeInfo is the full detail of a title.
type AnimeInfo struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	Image         string    `json:"image,omitempty"`
	Description   string    `json:"description,omitempty"`
	Type          string    `json:"type,omitempty"`
	ReleaseDate   string    `json:"releaseDate,omitempty"`
	Status        string    `json:"status,omitempty"`
	OtherName     string    `json:"otherName,omitempty"`
	SubOrDub      SubOrDub  `json:"subOrDub"`
	Genres        []string  `json:"genres"`
	TotalEpisodes int       `json:"totalEpisodes"`
	Episodes      []Episode `json:"episodes"`
}

// Episode is one episode of a title.
type Episode struct {
	ID     string  `json:"id"`
	Number float64 `json:"number"`
	URL    string  `json:"url"`
}

// EpisodeServer is a video host serving an episode.
type EpisodeServer struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Sources lists the playable media of an episode.
type Sources struct {
	Headers   map[string]string `json:"headers,omitempty"`
	Sources   []Video           `json:"sources"`
	Subtitles []Subtitle        `json:"subtitles,omitempty"`
	Download  string            `json:"download,omitempty"`
}

// Video is one playable stream.
type Video struct {
	URL     string `json:"url"`
	Quality string `json:"quality,omitempty"`
	IsM3U8  bool   `json:"isM3U8"`
	IsEmbed bool   `json:"isEmbed,omitempty"`
}

// Subtitle is a subtitle track.
type Subtitle struct {
	URL  string `json:"url"`
	Lang string `json:"lang"`
}

// Genre is a catalog genre.
type Genre struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Schedule is the release schedule of one day.
type Schedule struct {
	Date    string          `json:"date"`
	Results []ScheduleEntry `json:"results"`
}

// ScheduleEntry is an episode airing on a schedule day.
type ScheduleEntry struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	AiringTime    string `json:"airingTime"`
	AiringEpisode string `json:"airingEpisode"`
}

// Spotlight is the list of featured titles.
type Spotlight struct {
	Results []SpotlightEntry `json:"results"`
}

// SpotlightEntry is a featured title.
type SpotlightEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Banner      string `json:"banner,omitempty"`
	URL         string `json:"url,omitempty"`
	Rank        int    `json:"rank"`
}

// Suggestions is the result of a search-as-you-type lookup.
type Suggestions struct {
	Results []Suggestion `json:"results"`
}

// Suggestion is a lightweight search hit.
type Suggestion struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Image       string `json:"image,omitempty"`
	ReleaseDate string `json:"releaseDate,omitempty"`
	URL         string `json:"url,omitempty"`
}
