package db

import (
	"net/url"
	"regexp"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var kvPairRegex = regexp.MustCompile(`(?i)\b(host|user|password|dbname|port|sslmode)=`)

// NormalizeDSN accepts a postgres URL DSN, a lib/pq key=value list, or a
// sqlite file path. It trims quotes and whitespace and, for key=value form,
// returns it cleaned with sslmode defaulted.
func NormalizeDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	if s == "" {
		return s
	}
	if IsPostgresURL(s) {
		return s
	}
	if !kvPairRegex.MatchString(s) {
		// sqlite file path (or something the driver will reject)
		return s
	}
	// Collapse multiple spaces
	fields := strings.Fields(s)
	cleaned := strings.Join(fields, " ")
	if !strings.Contains(strings.ToLower(cleaned), "sslmode=") {
		cleaned += " sslmode=disable"
	}
	return cleaned
}

// IsPostgresURL reports whether the DSN is URL-form postgres.
func IsPostgresURL(dsn string) bool {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

// IsPostgres reports whether the DSN targets postgres (URL or key=value form).
// Anything else is treated as a sqlite file path.
func IsPostgres(dsn string) bool {
	return IsPostgresURL(dsn) || kvPairRegex.MatchString(dsn)
}

// ToURLDSN converts a key=value postgres DSN to URL form; golang-migrate only
// accepts URLs. URL-form input passes through unchanged, and so does a
// key=value list missing host/user/dbname (migrate will report it).
func ToURLDSN(kvDSN string) string {
	if kvDSN == "" || IsPostgresURL(kvDSN) {
		return kvDSN
	}
	m := map[string]string{}
	for _, part := range strings.Fields(kvDSN) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 {
			m[strings.ToLower(kv[0])] = kv[1]
		}
	}
	host := m["host"]
	port := m["port"]
	user := m["user"]
	pass := m["password"]
	dbname := m["dbname"]
	if host == "" || user == "" || dbname == "" {
		return kvDSN
	}
	u := &url.URL{Scheme: "postgres", Host: host}
	if port != "" {
		u.Host = host + ":" + port
	}
	if pass != "" {
		u.User = url.UserPassword(user, pass)
	} else {
		u.User = url.User(user)
	}
	u.Path = "/" + dbname
	q := url.Values{}
	if sslm, ok := m["sslmode"]; ok {
		q.Set("sslmode", sslm)
	}
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// Dialector selects the GORM driver from the DSN shape. Deployments run
// either postgres or a local sqlite file; the DSN decides which.
func Dialector(dsn string) gorm.Dialector {
	if IsPostgres(dsn) {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}
