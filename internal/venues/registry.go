package venues

// Registry is the immutable venue catalogue
type Registry struct {
	venues      []Venue
	byID        map[string]Venue
	byName      map[string]Venue
	landingPage string
}

// NewRegistry indexes the given venues. landingPage is the fallback navigation target.
func NewRegistry(landingPage string, venues ...Venue) *Registry {
	r := &Registry{
		venues:      make([]Venue, 0, len(venues)),
		byID:        make(map[string]Venue, len(venues)),
		byName:      make(map[string]Venue, len(venues)),
		landingPage: landingPage,
	}
	for _, v := range venues {
		r.venues = append(r.venues, v)
		r.byID[v.ID] = v
		r.byName[v.Name] = v
	}
	return r
}

// DefaultRegistry returns the three venues of the reference deployment
func DefaultRegistry(landingPage string) *Registry {
	grid := SlotGrid("ABCD", 4)
	return NewRegistry(landingPage,
		Venue{ID: "venue-a", Name: "Padang A", Page: "/venues/venue-a", Slots: grid},
		Venue{ID: "venue-b", Name: "Padang B", Page: "/venues/venue-b", Slots: grid},
		Venue{ID: "venue-c", Name: "Padang C", Page: "/venues/venue-c", Slots: grid},
	)
}

func (r *Registry) All() []Venue {
	out := make([]Venue, len(r.venues))
	copy(out, r.venues)
	return out
}

func (r *Registry) ByID(id string) (Venue, error) {
	v, ok := r.byID[id]
	if !ok {
		return Venue{}, ErrVenueNotFound
	}
	return v, nil
}

func (r *Registry) ByName(name string) (Venue, error) {
	v, ok := r.byName[name]
	if !ok {
		return Venue{}, ErrVenueNotFound
	}
	return v, nil
}

// PageFor returns the page of the named venue, or the landing page when unknown
func (r *Registry) PageFor(name string) string {
	if v, ok := r.byName[name]; ok {
		return v.Page
	}
	return r.landingPage
}

func (r *Registry) LandingPage() string {
	return r.landingPage
}
