package convert

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/revelaction/qadecl/squad"
	"github.com/revelaction/qadecl/stat"
)

// Factory builds the converter owned by one worker.
type Factory func() (*Converter, error)

// Outcome is the result of converting one article. Seq is the position of
// the article in the input.
type Outcome struct {
	Seq     int
	Title   string
	Article squad.Article
	Stats   stat.Stats
	Skips   []Skip
	Err     error
}

type job struct {
	seq     int
	article squad.Article
}

// Pool is a fixed set of workers, each owning one Converter for its whole
// life.
type Pool struct {
	converters []*Converter
}

// NewPool builds size converters with factory.
func NewPool(size int, factory Factory) (*Pool, error) {
	if size < 1 {
		size = 1
	}

	p := &Pool{}
	for i := 0; i < size; i++ {
		c, err := factory()
		if err != nil {
			return nil, fmt.Errorf("failed to create converter %d: %w", i, err)
		}
		p.converters = append(p.converters, c)
	}

	return p, nil
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.converters)
}

// Run converts the articles concurrently. Outcomes arrive in completion
// order; the channel is closed when all workers are done. A cancelled
// context stops feeding new articles, the ones already taken are finished.
// The caller must drain the channel.
func (p *Pool) Run(ctx context.Context, articles []squad.Article) <-chan Outcome {
	jobs := make(chan job)
	out := make(chan Outcome)

	go func() {
		defer close(jobs)
		for i, a := range articles {
			select {
			case jobs <- job{seq: i, article: a}:
			case <-ctx.Done():
				log.Warningf("conversion cancelled, %d of %d articles not started", len(articles)-i, len(articles))
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for _, c := range p.converters {
		wg.Add(1)
		go func(c *Converter) {
			defer wg.Done()
			for j := range jobs {
				out <- process(ctx, c, j)
			}
		}(c)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// process converts one article. A panic fails that article only.
func process(ctx context.Context, c *Converter, j job) (o Outcome) {
	o = Outcome{Seq: j.seq, Title: j.article.Title}

	defer func() {
		if r := recover(); r != nil {
			n := j.article.NumQas()
			o.Article = squad.Article{Title: j.article.Title}
			o.Stats = stat.Stats{Attempted: n, Skipped: map[string]int{CollaboratorFailure.String(): n}}
			o.Err = fmt.Errorf("article %q: panic: %v", j.article.Title, r)
			log.Errorf("%s", o.Err)
		}
	}()

	o.Article, o.Stats = c.Entry(ctx, j.article, func(s Skip) {
		o.Skips = append(o.Skips, s)
	})

	return o
}

// Collector accumulates outcomes. It is safe for concurrent use.
type Collector struct {
	mu       sync.Mutex
	outcomes []Outcome
	stats    *stat.Handler
	errs     []error
}

func NewCollector() *Collector {
	return &Collector{stats: stat.NewHandler()}
}

func (c *Collector) Add(o Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.outcomes = append(c.outcomes, o)
	c.stats.Aggregate(o.Stats)
	if o.Err != nil {
		c.errs = append(c.errs, o.Err)
	}
}

// Articles returns the converted articles, in input order if ordered is
// set. Articles left without paragraphs are dropped.
func (c *Collector) Articles(ordered bool) []squad.Article {
	c.mu.Lock()
	outcomes := make([]Outcome, len(c.outcomes))
	copy(outcomes, c.outcomes)
	c.mu.Unlock()

	if ordered {
		sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Seq < outcomes[j].Seq })
	}

	articles := []squad.Article{}
	for _, o := range outcomes {
		if len(o.Article.Paragraphs) > 0 {
			articles = append(articles, o.Article)
		}
	}
	return articles
}

func (c *Collector) Stats() stat.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats.Get()
}

func (c *Collector) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]error(nil), c.errs...)
}

// Collect drains outcomes into a new Collector. fn, if not nil, is called
// after each outcome with the number of articles finished so far.
func Collect(outcomes <-chan Outcome, total int, fn func(done int, o Outcome)) *Collector {
	c := NewCollector()

	done := 0
	for o := range outcomes {
		c.Add(o)
		done++
		if o.Err == nil {
			log.Infof("article %q finished as expected [%d/%d]", o.Title, done, total)
		}

		if fn != nil {
			fn(done, o)
		}
	}

	return c
}
