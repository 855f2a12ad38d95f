package components

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/happyplace/internal/props"
	"github.com/ericfisherdev/happyplace/internal/ui/html"
	"github.com/ericfisherdev/happyplace/internal/ui/hydrate"
)

type GalleryImage struct {
	Src     string `prop:"src"`
	Alt     string `prop:"alt"`
	Caption string `prop:"caption"`
}

type GalleryProps struct {
	Images     []GalleryImage `prop:"images"`
	Variant    string         `prop:"variant"` // "slider", "grid"
	Ratio      string         `prop:"ratio"`
	Autoplay   bool           `prop:"autoplay"`
	Interval   int            `prop:"interval"` // milliseconds
	ShowArrows bool           `prop:"show_arrows"`
	ShowDots   bool           `prop:"show_dots"`
	ShowCount  bool           `prop:"show_count"`
	ID         string         `prop:"id"`
	Class      string         `prop:"class"`
}

func DefaultGalleryProps() GalleryProps {
	return GalleryProps{
		Variant:    "slider",
		Ratio:      "16:9",
		Interval:   5000,
		ShowArrows: true,
		ShowDots:   true,
		ShowCount:  true,
	}
}

// GalleryImages converts plain image URLs, using alt for every image.
func GalleryImages(srcs []string, alt string) []GalleryImage {
	out := make([]GalleryImage, 0, len(srcs))
	for _, src := range srcs {
		if src == "" {
			continue
		}
		out = append(out, GalleryImage{Src: src, Alt: alt + " photo " + strconv.Itoa(len(out)+1)})
	}
	return out
}

func Gallery(p GalleryProps) templ.Component {
	images := make([]GalleryImage, 0, len(p.Images))
	for _, img := range p.Images {
		if img.Src != "" {
			images = append(images, img)
		}
	}
	if len(images) == 0 {
		return html.Empty()
	}
	variant := props.Enum(p.Variant, "slider", "slider", "grid")
	if p.Interval < 1000 {
		p.Interval = 5000
	}
	id := p.ID
	if id == "" {
		id = html.AutoID("gallery", images[0].Src, len(images))
	}
	interactive := variant == "slider" && len(images) > 1

	classes := html.NewClasses("hph-gallery", "hph-gallery--"+variant, ratioClass("hph-gallery", p.Ratio), p.Class)
	attrs := html.NewAttrs().ID(id).Class(classes)
	if interactive {
		attrs.Set("role", "region").Aria("roledescription", "carousel").Aria("label", "Photo gallery")
		hydrate.Mark(attrs, hydrate.Gallery, map[string]any{
			"autoplay": p.Autoplay,
			"interval": p.Interval,
		})
	}

	return html.Markup(func(b *html.Builder) {
		if interactive {
			hydrate.Require(b.Context(), hydrate.Gallery)
		}
		b.Open("div", attrs)
		b.Open("div", html.NewAttrs().Set("class", "hph-gallery__viewport"))
		b.Open("div", html.NewAttrs().Set("class", "hph-gallery__track"))
		for i, img := range images {
			slide := html.NewAttrs().Set("class", "hph-gallery__slide")
			if interactive {
				slide.Aria("roledescription", "slide").
					Aria("label", strconv.Itoa(i+1)+" of "+strconv.Itoa(len(images))).
					Aria("hidden", strconv.FormatBool(i != 0))
			}
			b.Open("figure", slide)
			imgAttrs := html.NewAttrs().Set("class", "hph-gallery__image").Src(img.Src).Set("alt", img.Alt)
			if i > 0 {
				imgAttrs.Set("loading", "lazy")
			}
			b.Void("img", imgAttrs)
			if img.Caption != "" {
				b.Element("figcaption", html.NewAttrs().Set("class", "hph-gallery__caption"), img.Caption)
			}
			b.Close("figure")
		}
		b.Close("div")
		b.Close("div")

		if interactive && p.ShowArrows {
			b.Open("button", html.NewAttrs().
				Set("type", "button").
				Set("class", "hph-gallery__arrow hph-gallery__arrow--prev").
				Bool("data-hph-gallery-prev", true).
				Aria("label", "Previous photo")).
				Component(icon("chevron-left", SizeLG)).
				Close("button")
			b.Open("button", html.NewAttrs().
				Set("type", "button").
				Set("class", "hph-gallery__arrow hph-gallery__arrow--next").
				Bool("data-hph-gallery-next", true).
				Aria("label", "Next photo")).
				Component(icon("chevron-right", SizeLG)).
				Close("button")
		}
		if interactive && p.ShowDots {
			b.Open("div", html.NewAttrs().Set("class", "hph-gallery__dots"))
			for i := range images {
				b.Element("button", html.NewAttrs().
					Set("type", "button").
					Set("class", "hph-gallery__dot").
					Data("hph-gallery-dot", strconv.Itoa(i)).
					Aria("label", "Show photo "+strconv.Itoa(i+1)).
					Aria("current", strconv.FormatBool(i == 0)), "")
			}
			b.Close("div")
		}
		if p.ShowCount && len(images) > 1 {
			b.Open("span", html.NewAttrs().Set("class", "hph-gallery__count")).
				Component(icon("image", SizeSM)).
				Textf("%d photos", len(images)).
				Close("span")
		}
		b.Close("div")
	})
}
