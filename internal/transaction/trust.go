package transaction

// TrustState says whether a transaction's category has been verified.
type TrustState string

const (
	// TrustConfirmed: a person set or approved the category.
	TrustConfirmed TrustState = "confirmed"
	// TrustPreselected: an import matched the category, awaiting approval.
	TrustPreselected TrustState = "preselected"
	// TrustMissing: nothing matched, the category needs review.
	TrustMissing TrustState = "missing"
)

// DeriveTrust computes the trust state from persisted fields. Import preview
// and transaction listing both call it, so a stored import shows the same
// state it was previewed with.
func DeriveTrust(confirmed bool, importedRaw *string, categoryID, uncategorizedID string) TrustState {
	if confirmed {
		return TrustConfirmed
	}

	if importedRaw == nil || *importedRaw == "" {
		return TrustMissing
	}

	if uncategorizedID != "" && categoryID == uncategorizedID {
		return TrustMissing
	}

	return TrustPreselected
}
