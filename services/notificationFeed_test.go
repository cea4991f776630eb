package services

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"edudash/cache"
	"edudash/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingToaster collects toasts for assertions
type recordingToaster struct {
	mu     sync.Mutex
	toasts []string
}

func (r *recordingToaster) Toast(message, severity string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, severity+": "+message)
}

func (r *recordingToaster) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.toasts...)
}

func newTestCacheForFeed(t *testing.T) *cache.QueryCache {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return cache.New(rdb, time.Minute)
}

func TestResolveQuerySpec_Variants(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		user uint
		opts FeedOptions
		want QueryKind
	}{
		{"no user", 0, FeedOptions{}, QueryNone},
		{"no user with filters", 0, FeedOptions{UnreadOnly: true}, QueryNone},
		{"all users", 0, FeedOptions{AllUsers: true}, QueryAllUsers},
		{"default by user", 42, FeedOptions{}, QueryByUser},
		{"search", 42, FeedOptions{Search: "refund"}, QueryBySearch},
		{"date range", 42, FeedOptions{From: from}, QueryByDateRange},
		{"course", 42, FeedOptions{CourseID: 7}, QueryByCourse},
		{"payment", 42, FeedOptions{PaymentID: 9}, QueryByPayment},
		{"type", 42, FeedOptions{Type: "Payment"}, QueryByType},
		{"unread", 42, FeedOptions{UnreadOnly: true}, QueryUnreadOnly},
		{"recent", 42, FeedOptions{RecentOnly: true}, QueryRecentOnly},
		{"search wins over type", 42, FeedOptions{Search: "x", Type: "Payment"}, QueryBySearch},
		{"course wins over unread", 42, FeedOptions{CourseID: 7, UnreadOnly: true}, QueryByCourse},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := ResolveQuerySpec(tc.user, tc.opts)
			assert.Equal(t, tc.want, spec.Kind)
		})
	}
}

func TestResolveQuerySpec_NormalizesType(t *testing.T) {
	spec := ResolveQuerySpec(42, FeedOptions{Type: "COURSE_APPROVAL"})
	assert.Equal(t, models.NotificationTypeCrsApprv, spec.Type)
}

func TestResolveQuerySpec_ClampsNegativePage(t *testing.T) {
	spec := ResolveQuerySpec(42, FeedOptions{Paginated: true, Page: -1})
	assert.Equal(t, 0, spec.Page)
}

func TestResolveQuerySpec_AllUsersKeyedUnderSharedUser(t *testing.T) {
	spec := ResolveQuerySpec(42, FeedOptions{AllUsers: true})
	assert.Equal(t, uint(0), spec.UserID)
	assert.Contains(t, spec.CacheKey(), "notif:user:0:")
}

func TestCacheKey_DistinctPerVariant(t *testing.T) {
	seen := map[string]QueryKind{}
	specs := []QuerySpec{
		{Kind: QueryByUser, UserID: 42},
		{Kind: QueryUnreadOnly, UserID: 42},
		{Kind: QueryRecentOnly, UserID: 42},
		{Kind: QueryBySearch, UserID: 42, Search: "refund"},
		{Kind: QueryBySearch, UserID: 42, Search: "welcome"},
		{Kind: QueryByCourse, UserID: 42, CourseID: 7},
		{Kind: QueryByPayment, UserID: 42, PaymentID: 7},
		{Kind: QueryByType, UserID: 42, Type: models.NotificationTypePayment},
		{Kind: QueryByUser, UserID: 42, Paginated: true, Page: 0, Size: 20},
		{Kind: QueryByUser, UserID: 42, Paginated: true, Page: 1, Size: 20},
		{Kind: QueryByUser, UserID: 7},
	}

	for _, spec := range specs {
		key := spec.CacheKey()
		prev, dup := seen[key]
		assert.False(t, dup, "key %q already used by %s", key, prev)
		seen[key] = spec.Kind
	}
}

func TestCacheKey_NestsUnderUserPrefix(t *testing.T) {
	spec := QuerySpec{Kind: QueryUnreadOnly, UserID: 42}
	assert.Contains(t, spec.CacheKey(), spec.UserPrefix())
}

func TestFeed_NoUserServesDefaultsWithoutRequests(t *testing.T) {
	requests := 0
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	feed := NewNotificationFeed(svc, newTestCacheForFeed(t), nil, 0, FeedOptions{UnreadOnly: true})

	data := feed.Load(context.Background())

	assert.NotNil(t, data.Items)
	assert.Empty(t, data.Items)
	assert.NoError(t, feed.LastErr())
	assert.Zero(t, requests)
}

func TestFeed_MarkAllReadInvalidatesUnreadView(t *testing.T) {
	var mu sync.Mutex
	unread := sampleNotifications()[:1] // one unread item

	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case r.URL.Path == "/notifications/user/42/unread":
			writeEnvelope(w, unread)
		case r.URL.Path == "/notifications/user/42/read-all" && r.Method == http.MethodPut:
			unread = []models.Notification{}
			writeEnvelope(w, nil)
		default:
			http.NotFound(w, r)
		}
	}))

	toaster := &recordingToaster{}
	feed := NewNotificationFeed(svc, newTestCacheForFeed(t), toaster, 42, FeedOptions{UnreadOnly: true})

	ctx := context.Background()
	before := feed.Load(ctx)
	require.Len(t, before.Items, 1)

	require.NoError(t, feed.MarkAllRead(ctx))

	after := feed.Load(ctx)
	assert.Empty(t, after.Items, "unread view must reflect the mutation after invalidation")
	assert.Contains(t, toaster.all(), "success: All notifications marked as read!")
}

func TestFeed_MutationFailurePropagatesAndToasts(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))

	toaster := &recordingToaster{}
	feed := NewNotificationFeed(svc, newTestCacheForFeed(t), toaster, 42, FeedOptions{})

	err := feed.Delete(context.Background(), 5)
	require.Error(t, err)

	toasts := toaster.all()
	require.Len(t, toasts, 1)
	assert.Contains(t, toasts[0], "error: ")
}

func TestFeed_ReadFailureServesFallbackAndToasts(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))

	toaster := &recordingToaster{}
	feed := NewNotificationFeed(svc, newTestCacheForFeed(t), toaster, 42, FeedOptions{})

	data := feed.Load(context.Background())

	assert.NotNil(t, data.Items)
	assert.Empty(t, data.Items)
	assert.Error(t, feed.LastErr())
	assert.Contains(t, toaster.all(), "error: Failed to load notifications")
}

func TestFeed_CachedLoadSkipsUpstream(t *testing.T) {
	requests := 0
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		writeEnvelope(w, sampleNotifications())
	}))

	feed := NewNotificationFeed(svc, newTestCacheForFeed(t), nil, 42, FeedOptions{})

	ctx := context.Background()
	feed.Load(ctx)
	feed.Load(ctx)

	assert.Equal(t, 1, requests)
}

func TestFeed_InfiniteModeAdvancesPage(t *testing.T) {
	var pages []string
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages = append(pages, r.URL.Query().Get("page"))
		writeEnvelope(w, models.NotificationPage{
			Content:       sampleNotifications(),
			TotalElements: 50,
			TotalPages:    3,
		})
	}))

	feed := NewNotificationFeed(svc, newTestCacheForFeed(t), nil, 42, FeedOptions{Infinite: true, Size: 20})

	ctx := context.Background()
	first := feed.Load(ctx)
	assert.True(t, first.HasMore)

	feed.LoadMore(ctx)
	assert.Equal(t, []string{"0", "1"}, pages)
}

func TestFeed_NegativePageServesFirstPage(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, sampleNotifications())
	}))

	feed := NewNotificationFeed(svc, newTestCacheForFeed(t), nil, 42, FeedOptions{
		UnreadOnly: true,
		Paginated:  true,
		Page:       -1,
		Size:       20,
	})

	var data FeedData
	assert.NotPanics(t, func() { data = feed.Load(context.Background()) })
	assert.NoError(t, feed.LastErr())
	assert.Equal(t, 0, data.Page)
	assert.Len(t, data.Items, 2)
}

func TestFeed_AllUsersViewSharedAcrossAdmins(t *testing.T) {
	listRequests := 0
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/admin/notifications":
			listRequests++
			writeEnvelope(w, sampleNotifications())
		case r.URL.Path == "/notifications/1/read" && r.Method == http.MethodPut:
			writeEnvelope(w, nil)
		default:
			http.NotFound(w, r)
		}
	}))

	qc := newTestCacheForFeed(t)
	first := NewNotificationFeed(svc, qc, nil, 42, FeedOptions{AllUsers: true})
	second := NewNotificationFeed(svc, qc, nil, 7, FeedOptions{AllUsers: true})

	ctx := context.Background()
	first.Load(ctx)
	second.Load(ctx)
	assert.Equal(t, 1, listRequests, "both admins must share one cached all-users view")

	// A mutation by one admin makes the shared view refetch for everyone
	require.NoError(t, second.MarkRead(ctx, 1))
	first.Load(ctx)
	assert.Equal(t, 2, listRequests)
}

func TestFeed_ForceRefreshSettles(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, sampleNotifications())
	}))

	feed := NewNotificationFeed(svc, newTestCacheForFeed(t), nil, 42, FeedOptions{})
	feed.SetSettle(time.Millisecond)
	feed.SetForceRetry(3, time.Millisecond)

	ctx := context.Background()
	feed.Load(ctx) // populate the cache

	require.NoError(t, feed.ForceRefresh(ctx))
}

func TestPaginateLocally(t *testing.T) {
	items := make([]models.Notification, 5)
	for i := range items {
		items[i].ID = uint(i + 1)
	}

	page := paginateLocally(items, 0, 2)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Content, 2)

	last := paginateLocally(items, 2, 2)
	assert.Len(t, last.Content, 1)

	beyond := paginateLocally(items, 9, 2)
	assert.Empty(t, beyond.Content)

	assert.NotPanics(t, func() {
		negative := paginateLocally(items, -1, 20)
		assert.Equal(t, 0, negative.Number)
		assert.Len(t, negative.Content, 5)
	})
}
