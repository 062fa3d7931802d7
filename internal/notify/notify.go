package notify

import (
	"log"
	"sync"
	"time"

	"github.com/missionMeteora/mandrill"

	"github.com/trendlink/trendlink/config"
)

// Notification is one queued message for a user.
type Notification struct {
	Username  string `json:"username"`
	Message   string `json:"message"`
	CreatedAt int64  `json:"createdAt"`
}

// Recipient resolves a username to a deliverable email address and display
// name. Empty email means in-app only.
type Recipient func(username string) (email, name string)

// Service is a fire-and-forget notification queue: any goroutine may
// enqueue, a single background worker drains. Delivered notifications are
// kept as per-user history.
type Service struct {
	mux     sync.Mutex
	queue   []*Notification
	history map[string][]*Notification
	stop    bool

	interval  time.Duration
	sandbox   bool
	mail      *mandrill.Client
	recipient Recipient
}

func New(cfg *config.Config, recipient Recipient) *Service {
	return &Service{
		history:   map[string][]*Notification{},
		interval:  cfg.NotifyInterval * time.Second,
		sandbox:   cfg.Sandbox,
		mail:      cfg.MailClient(),
		recipient: recipient,
	}
}

// AddNotification enqueues a message. No delivery guarantee.
func (s *Service) AddNotification(username, message string) {
	n := &Notification{
		Username:  username,
		Message:   message,
		CreatedAt: time.Now().UnixNano(),
	}
	s.mux.Lock()
	if !s.stop {
		s.queue = append(s.queue, n)
	}
	s.mux.Unlock()
}

// AddBulk enqueues the same message for several users.
func (s *Service) AddBulk(usernames []string, message string) {
	for _, username := range usernames {
		s.AddNotification(username, message)
	}
}

func (s *Service) PendingCount() int {
	s.mux.Lock()
	n := len(s.queue)
	s.mux.Unlock()
	return n
}

func (s *Service) TotalCount() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	n := len(s.queue)
	for _, hist := range s.history {
		n += len(hist)
	}
	return n
}

// NotificationsFor returns the delivered history for a user, oldest first.
func (s *Service) NotificationsFor(username string) []*Notification {
	s.mux.Lock()
	defer s.mux.Unlock()
	hist := s.history[username]
	out := make([]*Notification, len(hist))
	copy(out, hist)
	return out
}

func (s *Service) ClearFor(username string) {
	s.mux.Lock()
	delete(s.history, username)
	s.mux.Unlock()
}

// Run drains the queue until Stop is called. When the queue is empty the
// worker sleeps for the configured interval instead of spinning.
func (s *Service) Run() {
	for {
		n, stopped := s.next()
		if stopped {
			return
		}
		if n == nil {
			time.Sleep(s.interval)
			continue
		}
		s.deliver(n)
	}
}

// Stop asks the worker to exit after the current iteration. Queued
// notifications left behind are dropped.
func (s *Service) Stop() {
	s.mux.Lock()
	s.stop = true
	s.mux.Unlock()
}

func (s *Service) next() (*Notification, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.stop {
		return nil, true
	}
	if len(s.queue) == 0 {
		return nil, false
	}
	n := s.queue[0]
	s.queue = s.queue[1:]
	return n, false
}

func (s *Service) deliver(n *Notification) {
	s.mux.Lock()
	s.history[n.Username] = append(s.history[n.Username], n)
	s.mux.Unlock()

	log.Println("notification for", n.Username+":", n.Message)

	if s.sandbox || s.mail == nil || s.recipient == nil {
		return
	}
	email, name := s.recipient(n.Username)
	if email == "" {
		return
	}
	resp, err := s.mail.SendMessage(n.Message, "You have a new notification", email, name,
		[]string{"notification"})
	if err != nil || len(resp) != 1 || resp[0].RejectReason != "" {
		log.Println("email notification failed for", n.Username, err)
	}
}
