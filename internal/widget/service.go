package widget

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Vovarama1992/chat-widget/internal/responder"
)

type Options struct {
	// Mock answers when no backend is configured.
	Mock responder.Responder
	// Fallback answers when the configured backend failed.
	Fallback responder.Responder
	// Greeting is shown by Init. Empty disables it.
	Greeting string
	Now      func() time.Time
}

type service struct {
	backend   *BackendConfig
	sessions  *SessionStore
	client    Backend
	presenter Presenter
	mock      responder.Responder
	fallback  responder.Responder
	greeting  string
	now       func() time.Time
	log       zerolog.Logger

	wg       sync.WaitGroup
	initOnce sync.Once

	mu      sync.Mutex
	visible bool
}

func NewService(
	backend *BackendConfig,
	sessions *SessionStore,
	client Backend,
	presenter Presenter,
	log zerolog.Logger,
	opts Options,
) (Service, error) {
	if presenter == nil {
		return nil, ErrNoPresenter
	}
	if backend == nil {
		backend = &BackendConfig{source: SourceNone}
	}
	if sessions == nil {
		sessions = NewSessionStore(nil)
	}
	if client == nil {
		client = NewHTTPBackend(0)
	}
	if opts.Mock == nil {
		opts.Mock = responder.NewMock(responder.DefaultMockDelay)
	}
	if opts.Fallback == nil {
		opts.Fallback = responder.NewFallback(responder.DefaultFallbackDelay)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &service{
		backend:   backend,
		sessions:  sessions,
		client:    client,
		presenter: presenter,
		mock:      opts.Mock,
		fallback:  opts.Fallback,
		greeting:  opts.Greeting,
		now:       opts.Now,
		log:       log.With().Str("component", "widget").Logger(),
	}, nil
}

// Init is the "display surface ready" event: greeting, then bootstrap.
// Only the first call has an effect.
func (s *service) Init() {
	s.initOnce.Do(func() {
		url, ok := s.backend.URL()
		s.log.Info().
			Str("backend", url).
			Bool("mock", !ok).
			Str("source", s.backend.Source()).
			Msg("widget init")

		if s.greeting != "" {
			s.display(s.greeting, SenderBot)
		}
		s.Start()
	})
}

// Start is the best-effort bootstrap. Any failure is silent for the user.
func (s *service) Start() {
	base, ok := s.backend.URL()
	if !ok {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.bootstrap(context.Background(), base)
	}()
}

func (s *service) bootstrap(ctx context.Context, base string) {
	log := s.log.With().Str("backend", base).Logger()

	reply, err := s.client.Start(ctx, base)
	if err != nil {
		log.Debug().Err(err).Msg("conversation start skipped")
		return
	}

	if id, ok := reply.SessionID(); ok {
		s.sessions.Set(ctx, id)
	}
	if q, ok := reply.String("question"); ok {
		s.display(q, SenderBot)
	}
	log.Debug().Msg("conversation started")
}

// Send echoes the user text and resolves the bot answer in the background.
func (s *service) Send(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	s.display(text, SenderUser)

	base, ok := s.backend.URL()
	turnID := uuid.NewString()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx := context.Background()
		log := s.log.With().Str("turn_id", turnID).Logger()

		if !ok {
			log.Debug().Msg("mock mode, simulating reply")
			s.display(s.mock.Reply(ctx, text), SenderBot)
			return
		}

		sessionID, stored := s.sessions.Get(ctx)
		if !stored {
			sessionID = fallbackSessionID(s.now())
		}
		s.exchange(ctx, log, base, OutgoingMessage{Message: text, SessionID: sessionID})
	}()
}

func (s *service) exchange(ctx context.Context, log zerolog.Logger, base string, msg OutgoingMessage) {
	log = log.With().Str("backend", base).Str("session_id", msg.SessionID).Logger()

	reply, err := s.client.Respond(ctx, base, msg)
	if err != nil {
		log.Warn().Err(err).Msg("backend unreachable, using fallback")
		s.display(s.fallback.Reply(ctx, msg.Message), SenderBot)
		return
	}

	if id, ok := reply.SessionID(); ok {
		s.sessions.Set(ctx, id)
	}

	text, ok := reply.Text(ReplyFields...)
	if !ok {
		log.Debug().Msg("reply without text")
		text = NoAnswerText
	}
	s.display(text, SenderBot)
}

func (s *service) Toggle() bool {
	s.mu.Lock()
	s.visible = !s.visible
	visible := s.visible
	s.mu.Unlock()

	s.presenter.SetVisible(visible)
	return visible
}

func (s *service) Override(url string) {
	s.backend.Override(context.Background(), url)
	got, ok := s.backend.URL()
	s.log.Info().Str("backend", got).Bool("mock", !ok).Msg("backend overridden")
}

func (s *service) BackendURL() (string, bool) {
	return s.backend.URL()
}

// Wait blocks until every turn started so far has displayed its outcome.
func (s *service) Wait() {
	s.wg.Wait()
}

func (s *service) display(text string, sender Sender) {
	s.presenter.Display(DisplayEvent{
		ID:     uuid.NewString(),
		Text:   text,
		Sender: sender,
		At:     s.now(),
	})
}
