package scoring

// CodeLength is the number of digits in a secret or a guess
const CodeLength = 4

// ValidateCode reports whether s is exactly four ASCII digits.
// Leading zeros are allowed.
func ValidateCode(s string) bool {
	if len(s) != CodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ExactMatches counts positions where guess and secret hold the same digit
// ("fijas"). Digits present at another position score nothing.
func ExactMatches(guess, secret string) int {
	n := min(len(guess), len(secret))
	matches := 0
	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			matches++
		}
	}
	return matches
}

// IsWin reports whether the number of exact matches wins the game
func IsWin(exactMatches int) bool {
	return exactMatches == CodeLength
}
