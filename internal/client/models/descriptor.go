// Package models defines the content records managed by the admin client and
// the per-entity descriptors that drive their encoding and validation.
package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	ml "github.com/dmitrijs2005/memoradmin/internal/client/multilingual"
)

var ErrUnknownEntity = errors.New("unknown entity")

// UpdateStyle selects the endpoint used to update a record.
type UpdateStyle int

const (
	// UpdatePut issues PUT {path}/{id}.
	UpdatePut UpdateStyle = iota
	// UpdatePost issues POST {path}/update with the id in the body.
	UpdatePost
)

// DeleteStyle selects how a record is removed.
type DeleteStyle int

const (
	// DeleteHard issues DELETE {path}/{id}.
	DeleteHard DeleteStyle = iota
	// DeleteSoft sets isDeleted through the update endpoint.
	DeleteSoft
)

// AttrKind is the JSON type of a locale-independent attribute.
type AttrKind int

const (
	KindString AttrKind = iota
	KindNumber
	KindBool
)

// FieldSpec describes a translatable attribute.
type FieldSpec struct {
	Name     string
	Labels   ml.Labels
	Required bool
	// List marks list-valued content whose locales are zipped by index.
	List bool
}

// AttributeSpec describes a locale-independent attribute. Rules uses
// go-playground/validator tag syntax.
type AttributeSpec struct {
	Name  string
	Kind  AttrKind
	Rules string
}

// Descriptor describes one entity of the backend.
type Descriptor struct {
	Name        string
	Path        string
	ListKey     string
	Update      UpdateStyle
	Delete      DeleteStyle
	Fields      []FieldSpec
	Attributes  []AttributeSpec
	Attachments []string
}

// Field returns the spec of the translatable field name.
func (d *Descriptor) Field(name string) (FieldSpec, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Attribute returns the spec of the attribute name.
func (d *Descriptor) Attribute(name string) (AttributeSpec, bool) {
	for _, a := range d.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return AttributeSpec{}, false
}

// Title is the field shown first in tables.
func (d *Descriptor) Title() string {
	if len(d.Fields) == 0 {
		return ""
	}
	return d.Fields[0].Name
}

var (
	labelTitle       = ml.Labels{ml.EN: "Title", ml.TA: "தலைப்பு", ml.SI: "සිරැස්තලය"}
	labelDescription = ml.Labels{ml.EN: "Description", ml.TA: "விளக்கம்", ml.SI: "විස්තරය"}
	labelLocation    = ml.Labels{ml.EN: "Location", ml.TA: "இடம்", ml.SI: "ස්ථානය"}
	labelName        = ml.Labels{ml.EN: "Name", ml.TA: "பெயர்", ml.SI: "නම"}
	labelMessage     = ml.Labels{ml.EN: "Message", ml.TA: "செய்தி", ml.SI: "පණිවිඩය"}
	labelQuote       = ml.Labels{ml.EN: "Quote", ml.TA: "மேற்கோள்", ml.SI: "උපුටා දැක්වීම"}
	labelAuthor      = ml.Labels{ml.EN: "Author", ml.TA: "ஆசிரியர்", ml.SI: "කතුවරයා"}
	labelFeature     = ml.Labels{ml.EN: "Feature", ml.TA: "அம்சம்", ml.SI: "විශේෂාංගය"}
)

var registry = map[string]*Descriptor{
	"event": {
		Name: "event", Path: "event", ListKey: "events",
		Update: UpdatePut, Delete: DeleteHard,
		Fields: []FieldSpec{
			{Name: "title", Labels: labelTitle, Required: true},
			{Name: "description", Labels: labelDescription},
			{Name: "location", Labels: labelLocation},
		},
		Attributes: []AttributeSpec{
			{Name: "date", Rules: "omitempty,isodate"},
			{Name: "isActive", Kind: KindBool},
		},
		Attachments: []string{"image"},
	},
	"donation": {
		Name: "donation", Path: "obituary-donation", ListKey: "donations",
		Update: UpdatePost, Delete: DeleteSoft,
		Fields: []FieldSpec{
			{Name: "name", Labels: labelName, Required: true},
			{Name: "message", Labels: labelMessage},
		},
		Attributes: []AttributeSpec{
			{Name: "amount", Kind: KindNumber, Rules: "omitempty,numeric"},
			{Name: "email", Rules: "omitempty,email"},
		},
	},
	"package": {
		Name: "package", Path: "obituary-package", ListKey: "packages",
		Update: UpdatePut, Delete: DeleteHard,
		Fields: []FieldSpec{
			{Name: "title", Labels: labelTitle, Required: true},
			{Name: "descriptions", Labels: labelFeature, List: true},
		},
		Attributes: []AttributeSpec{
			{Name: "price", Kind: KindNumber, Rules: "required,numeric"},
			{Name: "isActive", Kind: KindBool},
		},
	},
	"post": {
		Name: "post", Path: "obituary-post", ListKey: "posts",
		Update: UpdatePost, Delete: DeleteHard,
		Fields: []FieldSpec{
			{Name: "title", Labels: labelTitle, Required: true},
			{Name: "description", Labels: labelDescription},
		},
		Attributes: []AttributeSpec{
			{Name: "status", Rules: "omitempty,oneof=pending approved rejected"},
		},
		Attachments: []string{"image"},
	},
	"podcast": {
		Name: "podcast", Path: "podcast", ListKey: "podcasts",
		Update: UpdatePut, Delete: DeleteHard,
		Fields: []FieldSpec{
			{Name: "title", Labels: labelTitle, Required: true},
			{Name: "description", Labels: labelDescription},
		},
		Attributes: []AttributeSpec{
			{Name: "audioUrl", Rules: "omitempty,url"},
			{Name: "date", Rules: "omitempty,isodate"},
		},
		Attachments: []string{"coverImage"},
	},
	"quote": {
		Name: "quote", Path: "quote", ListKey: "quotes",
		Update: UpdatePut, Delete: DeleteHard,
		Fields: []FieldSpec{
			{Name: "quote", Labels: labelQuote, Required: true},
			{Name: "author", Labels: labelAuthor},
		},
	},
	"youtube-news": {
		Name: "youtube-news", Path: "youtube-news", ListKey: "youtubeNews",
		Update: UpdatePut, Delete: DeleteHard,
		Fields: []FieldSpec{
			{Name: "title", Labels: labelTitle, Required: true},
			{Name: "description", Labels: labelDescription},
		},
		Attributes: []AttributeSpec{
			{Name: "youtubeUrl", Rules: "required,url"},
		},
	},
	"tribute": {
		Name: "tribute", Path: "tribute", ListKey: "tributes",
		Update: UpdatePost, Delete: DeleteSoft,
		Fields: []FieldSpec{
			{Name: "message", Labels: labelMessage, Required: true},
		},
		Attributes: []AttributeSpec{
			{Name: "postId"},
		},
	},
}

// Lookup returns the descriptor registered under name.
func Lookup(name string) (*Descriptor, error) {
	d, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, name)
	}
	return d, nil
}

// Entities returns the registered entity names in alphabetical order.
func Entities() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
