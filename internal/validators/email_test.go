package validators

import "testing"

// Only structurally broken addresses are asserted here; positive cases
// would need live DNS.
func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"plainaddress",
		"@nodomain.com",
		"user@",
		"user@nodot",
	} {
		if IsEmailDomainValid(in) {
			t.Errorf("IsEmailDomainValid(%q) = true, want false", in)
		}
	}
}
