package models

// JSON is a generic JSON object column, stored via the gorm json
// serializer. Used for opaque route metadata.
type JSON map[string]interface{}
