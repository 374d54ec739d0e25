package models

// APIKeyRecord is the credential for programmatic upload. A key either
// resolves to exactly one user and folder or is rejected outright.
type APIKeyRecord struct {
	Key      string `bson:"key" json:"-"`
	UserID   string `bson:"user_id" json:"userId"`
	FolderID string `bson:"folder_id" json:"folderId"`
	Valid    bool   `bson:"valid" json:"valid"`
}

// Usable reports whether the key may authorize an upload.
func (k *APIKeyRecord) Usable() bool {
	return k.Valid && k.UserID != "" && k.FolderID != ""
}
