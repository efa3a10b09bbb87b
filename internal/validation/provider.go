package validation

import (
	"context"

	"preflight/internal/records"
)

// ProviderEvaluator runs the institution-record checklist, the smallest of
// the six. The provider code and ABN format checks report under the
// mandatory code per the published rule set.
type ProviderEvaluator struct {
	library Library
}

func NewProviderEvaluator(library Library) *ProviderEvaluator {
	return &ProviderEvaluator{library: library}
}

func (e *ProviderEvaluator) Validate(ctx context.Context, provider *records.Provider, reportingPeriod string) (Result, error) {
	p := newPass(ctx, e.library, providerIdentifier(provider))

	p.mandatory("provider_code", provider.ProviderCode, "TCSI_PROVIDER_MANDATORY_001")
	p.mandatory("provider_name", provider.ProviderName, "TCSI_PROVIDER_MANDATORY_002")
	p.mandatory("campus_name", provider.CampusName, "TCSI_PROVIDER_MANDATORY_003")

	p.pattern("provider_code", provider.ProviderCode, providerCodePattern, "TCSI_PROVIDER_MANDATORY_001")

	if !isEmpty(provider.ABN) {
		p.length("abn", provider.ABN, 11, "TCSI_PROVIDER_MANDATORY_001")
		p.pattern("abn", provider.ABN, abnPattern, "TCSI_PROVIDER_MANDATORY_001")
	}

	return p.result(), nil
}

func providerIdentifier(pr *records.Provider) string {
	if !isEmpty(pr.ProviderCode) {
		return pr.ProviderCode
	}
	if !isEmpty(pr.ProviderName) {
		return pr.ProviderName
	}
	return "Unknown Provider"
}
