package domain

// DirectoryEntry is one registered account plus its credential placeholder.
// The account fields are inlined in the stored JSON.
type DirectoryEntry struct {
	UserAccount
	PasswordHash string `json:"passwordHash,omitempty"`
}

// Directory is the ordered collection of every registered account.
type Directory []DirectoryEntry

// IndexOfEmail returns the position of the entry with exactly this email, or -1.
func (d Directory) IndexOfEmail(email string) int {
	for i, entry := range d {
		if entry.Email == email {
			return i
		}
	}
	return -1
}

// IndexOf locates the entry backing account: by stable id when both sides
// carry one, otherwise by email.
func (d Directory) IndexOf(account UserAccount) int {
	if account.ID != "" {
		for i, entry := range d {
			if entry.ID == account.ID {
				return i
			}
		}
	}
	return d.IndexOfEmail(account.Email)
}

// EmailTakenByOther reports whether email belongs to an entry other than account's.
func (d Directory) EmailTakenByOther(account UserAccount, email string) bool {
	idx := d.IndexOfEmail(email)
	if idx < 0 {
		return false
	}
	own := d.IndexOf(account)
	return idx != own
}
