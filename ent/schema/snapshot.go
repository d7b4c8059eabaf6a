package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Snapshot holds one serialized document under a unique key. The session
// resume state and the score ledger are each stored as a snapshot.
type Snapshot struct {
	ent.Schema
}

func (Snapshot) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			Unique().
			NotEmpty().
			Immutable().
			Comment("Document name, e.g. session or ledger"),
		field.Bytes("data").
			Comment("Serialized document"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now).
			Comment("When the document was last written"),
	}
}
