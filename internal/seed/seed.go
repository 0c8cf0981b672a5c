// Package seed provides the built-in default collections.
//
// Defaults are YAML documents embedded in the binary. They are decoded
// through JSON so that every type reads them with the same rules it
// uses for persisted data.
package seed

import (
	"embed"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roach88/poolstore/internal/backoffice"
	"github.com/roach88/poolstore/internal/catalog"
	"github.com/roach88/poolstore/internal/site"
	"github.com/roach88/poolstore/internal/state"
)

//go:embed data/*.yaml
var files embed.FS

type catalogDoc struct {
	Products []catalog.Product `json:"products"`
}

type siteDoc struct {
	SiteConfig     site.Config                 `json:"siteConfig"`
	InfoBanner     site.InfoBanner             `json:"infoBannerConfig"`
	Popups         []site.Popup                `json:"popupConfigs"`
	Menu           site.MenuConfig             `json:"menuConfig"`
	HomeCategories []site.HomeCategory         `json:"homeCategories"`
	Pages          map[string]site.PageContent `json:"pagesContent"`
	Testimonials   []backoffice.Testimonial    `json:"testimonials"`
}

type backofficeDoc struct {
	Users          []backoffice.User          `json:"users"`
	Suppliers      []backoffice.Supplier      `json:"suppliers"`
	PaymentMethods []backoffice.PaymentMethod `json:"paymentMethods"`
	EmailTemplates []backoffice.EmailTemplate `json:"emailTemplates"`
}

// Defaults decodes the embedded defaults. Each call returns fresh values.
func Defaults() (state.Defaults, error) {
	var (
		cat catalogDoc
		st  siteDoc
		bo  backofficeDoc
	)
	if err := decode("data/catalog.yaml", &cat); err != nil {
		return state.Defaults{}, err
	}
	if err := decode("data/site.yaml", &st); err != nil {
		return state.Defaults{}, err
	}
	if err := decode("data/backoffice.yaml", &bo); err != nil {
		return state.Defaults{}, err
	}

	return state.Defaults{
		Products:       cat.Products,
		Users:          bo.Users,
		Suppliers:      bo.Suppliers,
		PaymentMethods: bo.PaymentMethods,
		EmailTemplates: bo.EmailTemplates,
		InfoBanner:     st.InfoBanner,
		Popups:         st.Popups,
		Menu:           st.Menu,
		Testimonials:   st.Testimonials,
		HomeCategories: st.HomeCategories,
		SiteConfig:     st.SiteConfig,
		Pages:          st.Pages,
		CookiePreferences: &site.CookiePreferences{
			Necessary: true,
		},
	}, nil
}

// MustDefaults is Defaults for callers that cannot recover from a broken
// binary.
func MustDefaults() state.Defaults {
	d, err := Defaults()
	if err != nil {
		panic(err)
	}
	return d
}

// Products decodes a YAML product list such as a scenario catalog.
func Products(data []byte) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := YAMLToJSON(data, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func decode(name string, out any) error {
	data, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := YAMLToJSON(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// YAMLToJSON decodes YAML into out by way of its JSON encoding.
func YAMLToJSON(data []byte, out any) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
