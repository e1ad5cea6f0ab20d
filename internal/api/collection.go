package api

// Collection names a backend resource and the envelope keys its responses use.
// Keys are explicit; nothing is derived from the path.
type Collection struct {
	Path    string
	ListKey string
	ItemKey string
}

var (
	Vendors  = Collection{Path: "vendors", ListKey: "vendors", ItemKey: "vendor"}
	Wallets  = Collection{Path: "wallets", ListKey: "wallets", ItemKey: "wallet"}
	Expenses = Collection{Path: "expenses", ListKey: "expenses", ItemKey: "expense"}
	Payments = Collection{Path: "payments", ListKey: "payments", ItemKey: "payment"}
	Deposits = Collection{Path: "deposits", ListKey: "deposits", ItemKey: "deposit"}

	// PaymentDeposits records a deposit through the payments endpoint, which
	// answers with the created record under "deposit".
	PaymentDeposits = Collection{Path: "payments", ListKey: "payments", ItemKey: "deposit"}
)
