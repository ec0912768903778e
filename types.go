package hateoas

import (
	"slices"

	"github.com/totegamma/hateoas-playground/internal/utils"
)

// LinksKey is the member name under which link sets are serialized.
const LinksKey = "_links"

// Link is a navigational hint: a relation label and the path it points to.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// LinkedResource is implemented by every resource exposed through an envelope.
// Links must be a pure function of the resource's identity fields.
type LinkedResource interface {
	Links() []Link
}

// Record is the projected form of a resource: an ordered JSON object.
type Record = utils.OrderedKV[any]

// KV is one member of a Record.
type KV = utils.KV[any]

// Envelope pairs a payload with an ordered link set.
// It serializes as {"data": ..., "_links": [...]}, with "_links" omitted when empty.
type Envelope[T any] struct {
	data  T
	links []Link
}

func Wrap[T any](data T, links ...Link) Envelope[T] {
	return Envelope[T]{
		data:  data,
		links: slices.Clone(links),
	}
}

func (e Envelope[T]) Data() T {
	return e.data
}

func (e Envelope[T]) Links() []Link {
	return slices.Clone(e.links)
}

func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	body := Record{{Key: "data", Value: e.data}}
	if len(e.links) > 0 {
		body = body.With(LinksKey, e.links)
	}
	return body.MarshalJSON()
}

// Item is a projected resource with its own links flattened alongside its fields.
type Item struct {
	fields Record
	links  []Link
}

func WrapItem[R LinkedResource](p *Projection[R], resource R) Item {
	return Item{
		fields: p.Project(resource),
		links:  slices.Clone(resource.Links()),
	}
}

func (i Item) Fields() Record {
	return slices.Clone(i.fields)
}

func (i Item) Links() []Link {
	return slices.Clone(i.links)
}

func (i Item) MarshalJSON() ([]byte, error) {
	body := i.fields
	if len(i.links) > 0 {
		body = body.With(LinksKey, i.links)
	}
	return body.MarshalJSON()
}

// WrapCollection builds the two-tier form: every resource becomes an Item
// carrying its own links, and links describe the collection itself.
func WrapCollection[R LinkedResource](p *Projection[R], resources []R, links ...Link) Envelope[[]Item] {
	items := make([]Item, 0, len(resources))
	for _, resource := range resources {
		items = append(items, WrapItem(p, resource))
	}
	return Wrap(items, links...)
}

// BuildIndexResponse serializes resources as a collection envelope.
// It returns the complete document or an error, never a partial result.
func BuildIndexResponse[R LinkedResource](p *Projection[R], resources []R, links ...Link) ([]byte, error) {
	return Marshal(WrapCollection(p, resources, links...))
}

// BuildItemResponse serializes a single resource wrapped in an envelope.
func BuildItemResponse[R LinkedResource](p *Projection[R], resource R, links ...Link) ([]byte, error) {
	return Marshal(Wrap(WrapItem(p, resource), links...))
}
