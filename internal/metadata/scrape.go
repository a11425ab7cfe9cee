package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/iconidentify/vidseo/internal/domain"
)

const maxPageBytes = 4 << 20

// lengthSeconds lives in the inline player JSON, not in markup.
var lengthSecondsRe = regexp.MustCompile(`"lengthSeconds":"(\d+)"`)

// enrichFromWatchPage fills fields found in the watch page's meta tags.
func (p *Provider) enrichFromWatchPage(ctx context.Context, meta *domain.VideoMetadata) error {
	pageURL := fmt.Sprintf("%s/watch?v=%s", p.webBaseURL, url.QueryEscape(meta.VideoID))
	body, err := p.get(ctx, pageURL, "text/html")
	if err != nil {
		return err
	}
	tags := pageMetaTags(body)

	if v := tags["og:title"]; v != "" {
		meta.Title = v
	}
	if v := tags["itemprop:name"]; v != "" {
		meta.Author = v
	}
	if v := tags["og:description"]; v != "" {
		meta.Description = v
	}
	if m := lengthSecondsRe.FindSubmatch(body); len(m) == 2 {
		if secs, err := strconv.Atoi(string(m[1])); err == nil {
			meta.DurationSeconds = secs
		}
	}
	if v := tags["og:image"]; v != "" {
		meta.ThumbnailURL = v
	}
	return nil
}

// pageMetaTags collects the content of <meta property|name=...> tags and of
// <link itemprop=...> tags (keyed "itemprop:<name>"). Attribute order and
// quoting do not matter; the first occurrence of a key wins.
func pageMetaTags(page []byte) map[string]string {
	tags := make(map[string]string)
	z := html.NewTokenizer(bytes.NewReader(page))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return tags
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.DataAtom != atom.Meta && tok.DataAtom != atom.Link {
				continue
			}
			var key, content string
			for _, attr := range tok.Attr {
				switch strings.ToLower(attr.Key) {
				case "property", "name":
					if tok.DataAtom == atom.Meta && key == "" {
						key = strings.ToLower(strings.TrimSpace(attr.Val))
					}
				case "itemprop":
					if tok.DataAtom == atom.Link {
						key = "itemprop:" + strings.ToLower(strings.TrimSpace(attr.Val))
					}
				case "content":
					content = strings.TrimSpace(attr.Val)
				}
			}
			if key == "" || content == "" {
				continue
			}
			if _, seen := tags[key]; !seen {
				tags[key] = content
			}
		}
	}
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// enrichFromOEmbed overrides title, author and thumbnail with oEmbed values.
func (p *Provider) enrichFromOEmbed(ctx context.Context, meta *domain.VideoMetadata) error {
	watchURL := "https://www.youtube.com/watch?v=" + meta.VideoID
	endpoint := fmt.Sprintf("%s/oembed?url=%s&format=json", p.webBaseURL, url.QueryEscape(watchURL))

	body, err := p.get(ctx, endpoint, "application/json")
	if err != nil {
		return err
	}

	var resp oembedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decode oembed: %w", err)
	}
	if resp.Title != "" {
		meta.Title = resp.Title
	}
	if resp.AuthorName != "" {
		meta.Author = resp.AuthorName
	}
	if resp.ThumbnailURL != "" {
		meta.ThumbnailURL = resp.ThumbnailURL
	}
	return nil
}

func (p *Provider) get(ctx context.Context, target, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
