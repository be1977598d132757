package cookies

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
)

// Jar is a request scoped view of the cookies sent by the client plus the
// cookies the handler wants to send back.
type Jar struct {
	mu       sync.Mutex
	incoming map[string]*http.Cookie
	delta    map[string]*http.Cookie
	order    []string
	flushed  bool
}

// NewJar seeds a jar from the cookies on r. When a name repeats the first one wins.
func NewJar(r *http.Request) *Jar {
	j := &Jar{
		incoming: make(map[string]*http.Cookie),
		delta:    make(map[string]*http.Cookie),
	}
	if r == nil {
		return j
	}
	for _, c := range r.Cookies() {
		if _, exists := j.incoming[c.Name]; !exists {
			j.incoming[c.Name] = c
		}
	}
	return j
}

// Get returns the cookie called name, preferring one added during this
// request over the one the client sent. It returns nil if neither exists.
func (j *Jar) Get(name string) *http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	if c, ok := j.delta[name]; ok {
		return c
	}
	return j.incoming[name]
}

// Add queues c to be sent with the response. A later Add with the same name
// replaces it. Once the jar has been written to a response header nothing can
// be queued any more: Add logs the dropped cookie and returns false.
func (j *Jar) Add(c *http.Cookie) bool {
	if c == nil {
		return false
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.flushed {
		log.Error().Str("cookie", c.Name).Msg("Cookie added after response header was written, dropping it")
		return false
	}
	if _, exists := j.delta[c.Name]; !exists {
		j.order = append(j.order, c.Name)
	}
	j.delta[c.Name] = c
	return true
}

// Delta returns the queued cookies in the order they were first added.
func (j *Jar) Delta() []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]*http.Cookie, 0, len(j.order))
	for _, name := range j.order {
		out = append(out, j.delta[name])
	}
	return out
}

// WriteTo adds a Set-Cookie header for every queued cookie and seals the jar.
func (j *Jar) WriteTo(h http.Header) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.flushed = true
	for _, name := range j.order {
		if v := j.delta[name].String(); v != "" {
			h.Add("Set-Cookie", v)
		}
	}
}
