package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"edudash/cache"
	"edudash/models"
)

// QueryKind enumerates every notification query variant the feed can run.
// Exactly one variant is active at a time.
type QueryKind string

const (
	QueryNone        QueryKind = "none" // no user id: safe defaults, no request
	QueryAllUsers    QueryKind = "all"
	QueryByUser      QueryKind = "byUser"
	QueryBySearch    QueryKind = "bySearch"
	QueryByDateRange QueryKind = "byDateRange"
	QueryByCourse    QueryKind = "byCourse"
	QueryByPayment   QueryKind = "byPayment"
	QueryByType      QueryKind = "byType"
	QueryUnreadOnly  QueryKind = "unreadOnly"
	QueryRecentOnly  QueryKind = "recentOnly"
)

// FeedOptions configures the feed. Filter fields are mutually exclusive; when
// several are set the resolver picks the most specific one in a fixed order.
type FeedOptions struct {
	AllUsers   bool
	Search     string
	From, To   time.Time
	CourseID   uint
	PaymentID  uint
	Type       string
	UnreadOnly bool
	RecentOnly bool

	Page      int
	Size      int
	Paginated bool
	Infinite  bool
}

// QuerySpec is the resolved query variant plus its parameters
type QuerySpec struct {
	Kind      QueryKind
	UserID    uint
	Search    string
	From, To  time.Time
	CourseID  uint
	PaymentID uint
	Type      models.NotificationType
	Page      int
	Size      int
	Paginated bool
}

// ResolveQuerySpec selects exactly one query variant from the options. The
// precedence order matches the filter specificity: search, date range,
// course, payment, type, unread, recent, then the plain per-user (or
// all-users) list.
func ResolveQuerySpec(userID uint, opts FeedOptions) QuerySpec {
	spec := QuerySpec{
		UserID:    userID,
		Page:      opts.Page,
		Size:      opts.Size,
		Paginated: opts.Paginated || opts.Infinite,
	}
	if spec.Size <= 0 {
		spec.Size = 20
	}
	if spec.Page < 0 {
		spec.Page = 0
	}

	if opts.AllUsers {
		// The all-users view is shared between admins; key it under user 0
		// so any mutation's invalidation sweep reaches it
		spec.Kind = QueryAllUsers
		spec.UserID = 0
		return spec
	}
	if userID == 0 {
		spec.Kind = QueryNone
		return spec
	}

	switch {
	case opts.Search != "":
		spec.Kind = QueryBySearch
		spec.Search = opts.Search
	case !opts.From.IsZero() || !opts.To.IsZero():
		spec.Kind = QueryByDateRange
		spec.From, spec.To = opts.From, opts.To
		if spec.To.IsZero() {
			spec.To = time.Now()
		}
	case opts.CourseID != 0:
		spec.Kind = QueryByCourse
		spec.CourseID = opts.CourseID
	case opts.PaymentID != 0:
		spec.Kind = QueryByPayment
		spec.PaymentID = opts.PaymentID
	case opts.Type != "":
		spec.Kind = QueryByType
		spec.Type = NormalizeNotificationType(opts.Type)
	case opts.UnreadOnly:
		spec.Kind = QueryUnreadOnly
	case opts.RecentOnly:
		spec.Kind = QueryRecentOnly
	default:
		spec.Kind = QueryByUser
	}
	return spec
}

// CacheKey encodes the active variant and its parameters so distinct filter
// combinations never collide in the cache. Keys nest under the user prefix so
// mutations can invalidate everything a user sees in one sweep.
func (spec QuerySpec) CacheKey() string {
	key := fmt.Sprintf("notif:user:%d:%s", spec.UserID, spec.Kind)
	switch spec.Kind {
	case QueryBySearch:
		key += ":" + spec.Search
	case QueryByDateRange:
		key += fmt.Sprintf(":%d-%d", spec.From.Unix(), spec.To.Unix())
	case QueryByCourse:
		key += fmt.Sprintf(":%d", spec.CourseID)
	case QueryByPayment:
		key += fmt.Sprintf(":%d", spec.PaymentID)
	case QueryByType:
		key += ":" + string(spec.Type)
	}
	if spec.Paginated {
		key += fmt.Sprintf(":p%ds%d", spec.Page, spec.Size)
	}
	return key
}

// UserPrefix is the invalidation prefix covering every cached query of the
// feed's user
func (spec QuerySpec) UserPrefix() string {
	return fmt.Sprintf("notif:user:%d:", spec.UserID)
}

// Toaster surfaces user-facing feedback for feed operations
type Toaster interface {
	Toast(message, severity string)
}

// LogToaster writes toasts to the process log
type LogToaster struct{}

func (LogToaster) Toast(message, severity string) {
	log.Printf("[TOAST %s] %s", severity, message)
}

// FeedData is the resolved feed content. List-shaped queries fill Items and
// leave the totals at the item count; page-shaped queries carry the upstream
// totals through.
type FeedData struct {
	Items         []models.Notification `json:"items"`
	TotalElements int64                 `json:"totalElements"`
	TotalPages    int                   `json:"totalPages"`
	Page          int                   `json:"page"`
	HasMore       bool                  `json:"hasMore"`
}

// NotificationFeed is the per-view notification query adapter: it resolves
// the active query variant, serves it through the query cache, and exposes
// mutations that invalidate the affected cache entries and toast the outcome.
type NotificationFeed struct {
	svc    *NotificationService
	cache  *cache.QueryCache
	toast  Toaster
	userID uint
	opts   FeedOptions

	page       int // infinite-mode cursor
	lastErr    error
	settle     time.Duration
	forceMax   int
	forceDelay time.Duration
}

// NewNotificationFeed creates a feed for one user and filter configuration
func NewNotificationFeed(svc *NotificationService, qc *cache.QueryCache, toast Toaster, userID uint, opts FeedOptions) *NotificationFeed {
	if toast == nil {
		toast = LogToaster{}
	}
	return &NotificationFeed{
		svc:        svc,
		cache:      qc,
		toast:      toast,
		userID:     userID,
		opts:       opts,
		page:       opts.Page,
		settle:     300 * time.Millisecond,
		forceMax:   3,
		forceDelay: 200 * time.Millisecond,
	}
}

// SetSettle overrides the post-invalidation settle delay
func (f *NotificationFeed) SetSettle(d time.Duration) { f.settle = d }

// SetForceRetry overrides the force-refresh retry bounds
func (f *NotificationFeed) SetForceRetry(max int, delay time.Duration) {
	f.forceMax = max
	f.forceDelay = delay
}

// Spec returns the resolved query variant for the feed's current state
func (f *NotificationFeed) Spec() QuerySpec {
	opts := f.opts
	opts.Page = f.page
	return ResolveQuerySpec(f.userID, opts)
}

// LastErr reports the error of the most recent load, if any. The feed always
// serves data (worst case the empty fallback), so this is the only error
// signal the read path has.
func (f *NotificationFeed) LastErr() error { return f.lastErr }

// Load resolves the active query through the cache and returns the feed data.
// Without a user id it returns safe defaults and issues no request.
func (f *NotificationFeed) Load(ctx context.Context) FeedData {
	spec := f.Spec()
	if spec.Kind == QueryNone {
		f.lastErr = nil
		return FeedData{Items: []models.Notification{}}
	}

	var data FeedData
	err := f.cache.Resolve(ctx, spec.CacheKey(), &data, func() (any, error) {
		return f.run(ctx, spec)
	})
	f.lastErr = err
	if err != nil {
		// Failed reads are non-fatal: toast, serve the fallback, keep the
		// error reachable through LastErr
		f.toast.Toast("Failed to load notifications", "error")
		return FeedData{Items: []models.Notification{}}
	}
	if data.Items == nil {
		data.Items = []models.Notification{}
	}
	return data
}

// LoadMore advances the infinite-scroll cursor and loads the next page
func (f *NotificationFeed) LoadMore(ctx context.Context) FeedData {
	if f.opts.Infinite {
		f.page++
	}
	return f.Load(ctx)
}

// run executes the resolved variant against the service layer
func (f *NotificationFeed) run(ctx context.Context, spec QuerySpec) (FeedData, error) {
	if spec.Paginated {
		page, err := f.runPaged(ctx, spec)
		return FeedData{
			Items:         page.Content,
			TotalElements: page.TotalElements,
			TotalPages:    page.TotalPages,
			Page:          page.Number,
			HasMore:       page.Number+1 < page.TotalPages,
		}, err
	}

	items, err := f.runList(ctx, spec)
	return FeedData{
		Items:         items,
		TotalElements: int64(len(items)),
		TotalPages:    1,
	}, err
}

func (f *NotificationFeed) runList(ctx context.Context, spec QuerySpec) ([]models.Notification, error) {
	switch spec.Kind {
	case QueryAllUsers:
		return f.svc.FetchAll(ctx)
	case QueryBySearch:
		return f.svc.Search(ctx, spec.UserID, spec.Search)
	case QueryByDateRange:
		return f.svc.FetchByDateRange(ctx, spec.UserID, spec.From, spec.To)
	case QueryByCourse:
		return f.svc.FetchByCourse(ctx, spec.UserID, spec.CourseID)
	case QueryByPayment:
		return f.svc.FetchByPayment(ctx, spec.UserID, spec.PaymentID)
	case QueryByType:
		return f.svc.FetchByType(ctx, spec.UserID, string(spec.Type))
	case QueryUnreadOnly:
		return f.svc.FetchUnread(ctx, spec.UserID)
	case QueryRecentOnly:
		return f.svc.FetchRecent(ctx, spec.UserID)
	default:
		return f.svc.FetchByUser(ctx, spec.UserID)
	}
}

func (f *NotificationFeed) runPaged(ctx context.Context, spec QuerySpec) (models.NotificationPage, error) {
	switch spec.Kind {
	case QueryAllUsers:
		return f.svc.FetchAllPaged(ctx, spec.Page, spec.Size)
	case QueryBySearch:
		return f.svc.SearchPaged(ctx, spec.UserID, spec.Search, spec.Page, spec.Size)
	case QueryByType:
		return f.svc.FetchByTypePaged(ctx, spec.UserID, string(spec.Type), spec.Page, spec.Size)
	default:
		// Variants without a paged upstream endpoint page the plain list
		items, err := f.runList(ctx, spec)
		return paginateLocally(items, spec.Page, spec.Size), err
	}
}

// paginateLocally slices a full list into the requested page shape
func paginateLocally(items []models.Notification, page, size int) models.NotificationPage {
	if page < 0 {
		page = 0
	}
	total := len(items)
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	pages := (total + size - 1) / size
	return models.NotificationPage{
		Content:       items[start:end],
		TotalElements: int64(total),
		TotalPages:    pages,
		Number:        page,
	}
}

// invalidate drops every cached query the user can see. Called only after a
// mutation succeeded.
func (f *NotificationFeed) invalidate(ctx context.Context) {
	spec := f.Spec()
	if err := f.cache.InvalidatePrefix(ctx, spec.UserPrefix()); err != nil {
		log.Printf("Failed to invalidate notification cache for user %d: %v", f.userID, err)
	}
	// Admin all-users views also go stale on any mutation
	if err := f.cache.InvalidatePrefix(ctx, "notif:user:0:"); err != nil {
		log.Printf("Failed to invalidate admin notification cache: %v", err)
	}
}

// mutate wraps a write: propagate and toast on failure, invalidate and toast
// on success
func (f *NotificationFeed) mutate(ctx context.Context, successMsg string, op func() error) error {
	if err := op(); err != nil {
		f.toast.Toast(err.Error(), "error")
		return err
	}
	f.invalidate(ctx)
	f.toast.Toast(successMsg, "success")
	return nil
}

// Create creates a notification and refreshes the feed's cache
func (f *NotificationFeed) Create(ctx context.Context, input models.NotificationInput) error {
	return f.mutate(ctx, "Notification created!", func() error {
		_, err := f.svc.Create(ctx, input)
		return err
	})
}

// MarkRead marks one notification read
func (f *NotificationFeed) MarkRead(ctx context.Context, id uint) error {
	return f.mutate(ctx, "Notification marked as read!", func() error {
		return f.svc.MarkAsRead(ctx, id)
	})
}

// MarkAllRead marks every notification of the feed's user read
func (f *NotificationFeed) MarkAllRead(ctx context.Context) error {
	return f.mutate(ctx, "All notifications marked as read!", func() error {
		return f.svc.MarkAllAsRead(ctx, f.userID, "")
	})
}

// MarkAllReadByType marks one category read
func (f *NotificationFeed) MarkAllReadByType(ctx context.Context, typ string) error {
	return f.mutate(ctx, "Notifications marked as read!", func() error {
		return f.svc.MarkAllAsRead(ctx, f.userID, typ)
	})
}

// Delete deletes one notification
func (f *NotificationFeed) Delete(ctx context.Context, id uint) error {
	return f.mutate(ctx, "Notification deleted!", func() error {
		return f.svc.Delete(ctx, id)
	})
}

// DeleteAllRead deletes every read notification of the feed's user
func (f *NotificationFeed) DeleteAllRead(ctx context.Context) error {
	return f.mutate(ctx, "Read notifications deleted!", func() error {
		return f.svc.DeleteAllRead(ctx, f.userID)
	})
}

// Send sends a notification to one user
func (f *NotificationFeed) Send(ctx context.Context, userID uint, content, typ string) error {
	return f.mutate(ctx, "Notification sent!", func() error {
		_, err := f.svc.Send(ctx, userID, content, typ)
		return err
	})
}

// SendMulti sends the same notification to several users
func (f *NotificationFeed) SendMulti(ctx context.Context, userIDs []uint, content, typ string) error {
	return f.mutate(ctx, "Notifications sent!", func() error {
		return f.svc.SendMulti(ctx, userIDs, content, typ)
	})
}

// UpdateContent replaces a notification's content
func (f *NotificationFeed) UpdateContent(ctx context.Context, id uint, content string) error {
	return f.mutate(ctx, "Notification updated!", func() error {
		return f.svc.UpdateContent(ctx, id, content)
	})
}

// Refresh invalidates the feed's cache and waits a short settle interval so
// an immediate re-read hits fresh data
func (f *NotificationFeed) Refresh(ctx context.Context) {
	f.invalidate(ctx)
	select {
	case <-ctx.Done():
	case <-time.After(f.settle):
	}
}

// ForceRefresh repeats invalidation with growing backoff until the settle
// check passes (the active key is gone from the cache) or the attempts are
// exhausted
func (f *NotificationFeed) ForceRefresh(ctx context.Context) error {
	key := f.Spec().CacheKey()
	for attempt := 1; attempt <= f.forceMax; attempt++ {
		f.invalidate(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * f.forceDelay):
		}
		if !f.cache.Has(ctx, key) {
			return nil
		}
	}
	return fmt.Errorf("notification cache for user %d did not settle after %d attempts", f.userID, f.forceMax)
}
