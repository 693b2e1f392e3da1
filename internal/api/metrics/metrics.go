// Package metrics defines and registers all custom Prometheus metrics for the
// FlowFit API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed by the /metrics route.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "flowfit"

// Label values shared by callers.
const (
	ResultSuccess            = "success"
	ResultUserNotFound       = "user_not_found"
	ResultInvalidCredentials = "invalid_credentials"
	ResultHit                = "hit"
	ResultMiss               = "miss"
	ResultError              = "error"

	ReasonMissingToken = "missing_token"
	ReasonExpired      = "expired"
	ReasonInvalid      = "invalid"
	ReasonForbidden    = "forbidden"

	MethodPix         = "pix"
	MethodCash        = "dinheiro"
	MethodCard        = "cartao"
	MethodBoleto      = "boleto"
	MethodOther       = "outro"
	MethodNotInformed = "nao_informado"
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "user_not_found", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests refused by the access control middleware.
// Label:
//   - reason: "missing_token", "expired", "invalid" or "forbidden"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or authorization.",
	},
	[]string{"reason"},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentsRegisteredTotal counts payments marked as paid.
// Label:
//   - method: PaymentMethod bucket of the operator's free-text method
var PaymentsRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_registered_total",
		Help:      "Total number of payments registered as paid, by method.",
	},
	[]string{"method"},
)

// ReportCacheTotal counts dashboard cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var ReportCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_cache_total",
		Help:      "Total number of dashboard cache lookups, labelled by result (hit/miss/error).",
	},
	[]string{"result"},
)

// PaymentMethod maps the free-text method typed by an operator onto a fixed
// label set so the method label stays bounded.
func PaymentMethod(method string) string {
	m := strings.ToLower(strings.TrimSpace(method))
	switch {
	case m == "" || m == "não informado" || m == "nao informado":
		return MethodNotInformed
	case strings.Contains(m, "pix"):
		return MethodPix
	case strings.Contains(m, "dinheiro"), strings.Contains(m, "espécie"), strings.Contains(m, "especie"):
		return MethodCash
	case strings.Contains(m, "cart"), strings.Contains(m, "créd"), strings.Contains(m, "cred"),
		strings.Contains(m, "déb"), strings.Contains(m, "deb"):
		return MethodCard
	case strings.Contains(m, "boleto"):
		return MethodBoleto
	}
	return MethodOther
}
