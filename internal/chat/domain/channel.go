package domain

// Channel definition workspace channel
type Channel struct {
	ID        string   `bson:"_id,omitempty" json:"id"`
	Name      string   `bson:"name" json:"name"`
	Members   []string `bson:"members,omitempty" json:"members,omitempty"`
	CreatedAt int64    `bson:"created_at,omitempty" json:"created_at,omitempty"`
}
