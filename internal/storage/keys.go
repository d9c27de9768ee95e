package storage

// Key builders for the store's namespaces. Keeping them in one place
// avoids scattering the key format across packages.

// UserKey holds a user's credential record.
func UserKey(username string) string {
	return "user:" + username
}

// ExpensesKey holds a user's serialized expense records.
func ExpensesKey(username string) string {
	return "expenses:" + username
}

// BudgetKey holds a user's serialized monthly budget.
func BudgetKey(username string) string {
	return "budget:" + username
}

// SessionKey is the process-wide active-session marker.
func SessionKey() string {
	return "session:active"
}
