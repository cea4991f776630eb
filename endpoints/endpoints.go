package endpoints

import (
	"fmt"
	"strings"
)

// registry maps logical resource names to upstream URL templates. Path
// parameters use {name} placeholders resolved by Build.
var registry = map[string]string{
	// auth
	"auth.login":   "/auth/login",
	"auth.logout":  "/auth/logout",
	"auth.refresh": "/auth/refresh",

	// admin accounts
	"accounts.list":         "/admin/accounts",
	"accounts.get":          "/admin/accounts/{id}",
	"accounts.search":       "/admin/accounts/search",
	"accounts.updateStatus": "/admin/accounts/{id}/status",

	// admin courses
	"courses.list":    "/admin/courses",
	"courses.get":     "/admin/courses/{id}",
	"courses.approve": "/admin/courses/{id}/approve",
	"courses.reject":  "/admin/courses/{id}/reject",

	// categories
	"categories.list": "/categories",

	// enrollments
	"enrollments.byCourse": "/enrollments/course/{courseId}",
	"enrollments.byUser":   "/enrollments/user/{userId}",

	// instructors
	"instructors.list":        "/admin/instructors",
	"instructors.get":         "/instructors/{id}",
	"instructors.educations":  "/instructors/{id}/educations",
	"instructors.experiences": "/instructors/{id}/experiences",
	"instructors.skills":      "/instructors/{id}/skills",
	"instructors.socialLinks": "/instructors/{id}/social-links",
	"instructors.approve":     "/admin/instructors/{id}/approve",
	"instructors.reject":      "/admin/instructors/{id}/reject",

	// students
	"students.list": "/admin/students",
	"students.get":  "/admin/students/{id}",

	// favorites, files, progress, reviews, tests, tickets
	"favorites.byUser":  "/favorites/user/{userId}",
	"files.get":         "/files/{id}",
	"progress.byCourse": "/progress/course/{courseId}/user/{userId}",
	"reviews.byCourse":  "/reviews/course/{courseId}",
	"tests.byCourse":    "/tests/course/{courseId}",
	"tickets.list":      "/admin/tickets",
	"tickets.get":       "/admin/tickets/{id}",

	// transactions / payments
	"transactions.list":        "/admin/transactions",
	"transactions.get":         "/admin/transactions/{id}",
	"payments.paypal.capture":  "/payment/paypal/capture",
	"payments.vnpay.verify":    "/payment/vnpay/verify",
	"withdrawals.approve":      "/admin/withdrawals/{id}/approve",
	"withdrawals.reject":       "/admin/withdrawals/{id}/reject",

	// wallets
	"wallets.list":      "/admin/wallets",
	"wallets.byUser":    "/wallets/user/{userId}",
	"wallets.setStatus": "/admin/wallets/{id}/status",
	"wallets.setLimit":  "/admin/wallets/{id}/limit",

	// notifications
	"notifications.all":             "/admin/notifications",
	"notifications.allPaged":        "/admin/notifications/paginated",
	"notifications.byUser":          "/notifications/user/{userId}",
	"notifications.byUserPaged":     "/notifications/user/{userId}/paginated",
	"notifications.byType":          "/notifications/user/{userId}/type/{type}",
	"notifications.byTypePaged":     "/notifications/user/{userId}/type/{type}/paginated",
	"notifications.byCourse":        "/notifications/user/{userId}/course/{courseId}",
	"notifications.byPayment":       "/notifications/user/{userId}/payment/{paymentId}",
	"notifications.unread":          "/notifications/user/{userId}/unread",
	"notifications.unreadCount":     "/notifications/user/{userId}/unread/count",
	"notifications.byDateRange":     "/notifications/user/{userId}/range",
	"notifications.search":          "/notifications/user/{userId}/search",
	"notifications.searchPaged":     "/notifications/user/{userId}/search/paginated",
	"notifications.stats":           "/notifications/user/{userId}/statistics",
	"notifications.create":          "/notifications",
	"notifications.markRead":        "/notifications/{id}/read",
	"notifications.markAllRead":     "/notifications/user/{userId}/read-all",
	"notifications.delete":          "/notifications/{id}",
	"notifications.deleteAllRead":   "/notifications/user/{userId}/read",
	"notifications.send":            "/notifications/send",
	"notifications.sendMulti":       "/notifications/send-multiple",
	"notifications.updateContent":   "/notifications/{id}/content",
	"notifications.health":          "/notifications/health",
}

// Build resolves a logical endpoint name into an upstream path, substituting
// {placeholder} segments from params. Unknown names and unresolved
// placeholders are errors so a bad call site fails loudly instead of hitting
// a wrong URL.
func Build(name string, params map[string]string) (string, error) {
	template, ok := registry[name]
	if !ok {
		return "", fmt.Errorf("unknown endpoint: %s", name)
	}

	path := template
	for key, value := range params {
		path = strings.ReplaceAll(path, "{"+key+"}", value)
	}

	if start := strings.Index(path, "{"); start != -1 {
		end := strings.Index(path[start:], "}")
		if end == -1 {
			end = len(path) - start
		}
		return "", fmt.Errorf("endpoint %s: missing parameter %s", name, path[start:start+end+1])
	}

	return path, nil
}

// MustBuild is Build for call sites whose parameters are statically known
func MustBuild(name string, params map[string]string) string {
	path, err := Build(name, params)
	if err != nil {
		panic(err)
	}
	return path
}
