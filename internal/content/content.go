// Package content loads the landing page copy. The default copy is embedded; a YAML
// file with the same shape can replace it at startup.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

//go:embed landing.yaml
var defaultYAML []byte

// ErrNoFAQ is returned when the copy defines no FAQ entries.
var ErrNoFAQ = errors.New("content: faq has no items")

// Site is the full copy of the landing page.
type Site struct {
	Brand   string
	Tagline string
	Logo    Image
	Hero    Hero
	Art     Art
	FAQ     FAQ
	Footer  Footer
	SEO     SEO
}

// Image is a source path with alt text.
type Image struct {
	Src string
	Alt string
}

// Hero holds the home section copy.
type Hero struct {
	MarketCapLabel string
	TopArtTitle    string
	TopArt         Image
}

// Art holds the art section copy and the carousel item identifiers.
type Art struct {
	Title    string
	Subtitle string
	Items    []int
}

// FAQ is the collapsible question list.
type FAQ struct {
	Title string
	Items []FAQItem
}

// FAQItem is one question. Answer is sanitised HTML rendered from markdown.
type FAQItem struct {
	Question string
	Answer   template.HTML
}

// Footer holds the footer note and outbound links.
type Footer struct {
	Note  string
	Links []Link
}

// Link is an outbound footer link.
type Link struct {
	Label string
	Href  string
}

// SEO holds page-level metadata defaults.
type SEO struct {
	Title       string
	Description string
	OGImage     string
}

type siteDoc struct {
	Brand   string   `yaml:"brand"`
	Tagline string   `yaml:"tagline"`
	Logo    imageDoc `yaml:"logo"`
	Hero    struct {
		MarketCapLabel string   `yaml:"market_cap_label"`
		TopArtTitle    string   `yaml:"top_art_title"`
		TopArt         imageDoc `yaml:"top_art"`
	} `yaml:"hero"`
	Art struct {
		Title    string `yaml:"title"`
		Subtitle string `yaml:"subtitle"`
		Items    []int  `yaml:"items"`
	} `yaml:"art"`
	FAQ struct {
		Title string `yaml:"title"`
		Items []struct {
			Question string `yaml:"question"`
			Answer   string `yaml:"answer"`
		} `yaml:"items"`
	} `yaml:"faq"`
	Footer struct {
		Note  string `yaml:"note"`
		Links []struct {
			Label string `yaml:"label"`
			Href  string `yaml:"href"`
		} `yaml:"links"`
	} `yaml:"footer"`
	SEO struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		OGImage     string `yaml:"og_image"`
	} `yaml:"seo"`
}

type imageDoc struct {
	Src string `yaml:"src"`
	Alt string `yaml:"alt"`
}

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify))
	policy   = bluemonday.UGCPolicy()
)

// Default returns the embedded copy.
func Default() (Site, error) {
	return Parse(defaultYAML)
}

// Load reads copy from path, or returns the embedded copy when path is empty.
func Load(path string) (Site, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Site{}, fmt.Errorf("content: read %s: %w", path, err)
	}
	site, err := Parse(raw)
	if err != nil {
		return Site{}, fmt.Errorf("content: %s: %w", path, err)
	}
	return site, nil
}

// Parse decodes YAML copy and renders FAQ answers.
func Parse(raw []byte) (Site, error) {
	var doc siteDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Site{}, fmt.Errorf("content: parse yaml: %w", err)
	}
	if len(doc.FAQ.Items) == 0 {
		return Site{}, ErrNoFAQ
	}

	site := Site{
		Brand:   firstNonEmpty(doc.Brand, "CULTR"),
		Tagline: strings.TrimSpace(doc.Tagline),
		Logo:    Image{Src: strings.TrimSpace(doc.Logo.Src), Alt: strings.TrimSpace(doc.Logo.Alt)},
		Hero: Hero{
			MarketCapLabel: strings.TrimSpace(doc.Hero.MarketCapLabel),
			TopArtTitle:    strings.TrimSpace(doc.Hero.TopArtTitle),
			TopArt:         Image{Src: strings.TrimSpace(doc.Hero.TopArt.Src), Alt: strings.TrimSpace(doc.Hero.TopArt.Alt)},
		},
		Art: Art{
			Title:    strings.TrimSpace(doc.Art.Title),
			Subtitle: strings.TrimSpace(doc.Art.Subtitle),
			Items:    append([]int(nil), doc.Art.Items...),
		},
		FAQ: FAQ{Title: strings.TrimSpace(doc.FAQ.Title)},
		Footer: Footer{
			Note: strings.TrimSpace(doc.Footer.Note),
		},
		SEO: SEO{
			Title:       strings.TrimSpace(doc.SEO.Title),
			Description: strings.TrimSpace(doc.SEO.Description),
			OGImage:     strings.TrimSpace(doc.SEO.OGImage),
		},
	}
	for i, it := range doc.FAQ.Items {
		q := strings.TrimSpace(it.Question)
		if q == "" {
			return Site{}, fmt.Errorf("content: faq item %d has no question", i)
		}
		answer, err := RenderMarkdown(it.Answer)
		if err != nil {
			return Site{}, fmt.Errorf("content: faq item %d: %w", i, err)
		}
		site.FAQ.Items = append(site.FAQ.Items, FAQItem{Question: q, Answer: answer})
	}
	for _, l := range doc.Footer.Links {
		if strings.TrimSpace(l.Href) == "" {
			continue
		}
		site.Footer.Links = append(site.Footer.Links, Link{
			Label: firstNonEmpty(l.Label, l.Href),
			Href:  strings.TrimSpace(l.Href),
		})
	}
	return site, nil
}

// RenderMarkdown converts markdown to HTML and strips anything outside the UGC policy.
func RenderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(strings.TrimSpace(src)), &buf); err != nil {
		return "", err
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
