package alerts

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/shenikar/armguard_console/internal/session"
)

// SessionSource - откуда Poller узнает о входе и выходе оператора
type SessionSource interface {
	Subscribe(fn func(session.State)) func()
}

// Feed - push-канал алертов, живущий столько же, сколько опрос
type Feed interface {
	Run(ctx context.Context, onMessage func(map[string]any))
}

// Poller обновляет Store раз в interval, пока есть сессия.
// Интервал отсчитывается от начала запроса, а не от его завершения.
// После неудачных опросов интервал растет вдвое, но не выше maxBackoff.
type Poller struct {
	store      *Store
	interval   time.Duration
	maxBackoff time.Duration
	logger     *logrus.Logger
	feed       Feed
	after      func(time.Duration) <-chan time.Time
	now        func() time.Time

	mu     sync.Mutex
	parent context.Context
	key    string
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(store *Store, interval, maxBackoff time.Duration, logger *logrus.Logger) *Poller {
	if maxBackoff < interval {
		maxBackoff = interval
	}
	return &Poller{
		store:      store,
		interval:   interval,
		maxBackoff: maxBackoff,
		logger:     logger,
		after:      time.After,
		now:        time.Now,
		parent:     context.Background(),
	}
}

// WithFeed подключает push-канал: он открывается при входе и закрывается при выходе
func (p *Poller) WithFeed(feed Feed) *Poller {
	p.mu.Lock()
	p.feed = feed
	p.mu.Unlock()
	return p
}

// Bind запускает и останавливает опрос вслед за состоянием сессии
func (p *Poller) Bind(ctx context.Context, src SessionSource) func() {
	p.mu.Lock()
	p.parent = ctx
	p.mu.Unlock()

	unsubscribe := src.Subscribe(func(st session.State) {
		if !st.Authenticated {
			p.Stop()
			return
		}
		// новый токен или другой пользователь - опрос начинается заново
		p.restartFor(st.Session.User.ID + "|" + st.Session.Token)
	})
	return func() {
		unsubscribe()
		p.Stop()
	}
}

func (p *Poller) restartFor(key string) {
	p.mu.Lock()
	running := p.cancel != nil
	same := p.key == key
	p.mu.Unlock()

	if running && same {
		return
	}
	if running {
		p.Stop()
	}
	p.mu.Lock()
	p.key = key
	p.mu.Unlock()
	p.Start()
}

// Start запускает цикл опроса: сразу один запрос, затем по интервалу
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(p.parent)
	p.cancel = cancel
	p.done = make(chan struct{})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p.run(gctx)
		return nil
	})
	if feed := p.feed; feed != nil {
		g.Go(func() error {
			feed.Run(gctx, p.store.Ingest)
			return nil
		})
	}
	go func(done chan struct{}) {
		_ = g.Wait()
		close(done)
	}(p.done)
	p.logger.WithField("interval", p.interval.String()).Info("Alerts polling started")
}

// Stop отменяет запрос в полете, ждет выхода цикла и очищает кеш
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done, p.key = nil, nil, ""
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
		p.logger.Info("Alerts polling stopped")
	}
	p.store.Reset()
}

// Running - идет ли опрос
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func (p *Poller) run(ctx context.Context) {
	failures := 0

	for {
		started := p.now()
		err := p.store.Refresh(ctx)
		if ctx.Err() != nil {
			return
		}

		// медленный ответ съедает часть интервала
		delay := p.interval - p.now().Sub(started)
		if delay < 0 {
			delay = 0
		}
		if err != nil {
			failures++
			delay = p.backoff(failures)
			p.logger.WithError(err).WithFields(logrus.Fields{
				"failures": failures,
				"retry_in": delay.String(),
			}).Warn("Alerts poll failed")
		} else {
			failures = 0
		}

		select {
		case <-ctx.Done():
			return
		case <-p.after(delay):
		}
	}
}

func (p *Poller) backoff(failures int) time.Duration {
	d := p.interval
	for i := 1; i < failures && d < p.maxBackoff; i++ {
		d *= 2
	}
	if d > p.maxBackoff {
		d = p.maxBackoff
	}
	return d
}
