package models

// FolderSettings is the per-folder sharing-button configuration shown on
// public gallery pages. Read often, changed rarely, so it sits behind a TTL
// cache on the read path.
type FolderSettings struct {
	FolderID       string   `bson:"folder_id" json:"folderId"`
	ShareButtons   bool     `bson:"share_buttons" json:"shareButtons"`
	ButtonNetworks []string `bson:"button_networks,omitempty" json:"buttonNetworks,omitempty"`
}
