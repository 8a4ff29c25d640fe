package model

// MetaInfo is the persisted service/schema version record
type MetaInfo struct {
	ID              string `bson:"_id"`
	Version         string `bson:"version"`
	DatabaseVersion int    `bson:"databaseversion"`
}
