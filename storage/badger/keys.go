package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/sellsense/knowbase/core"
)

// Key prefixes for different data types
const (
	knowledgeDocPrefix    = "knodoc"
	knowledgeEntityPrefix = "knodoce"
	trainingSetPrefix     = "trnset"
	analyticsPrefix       = "anevt"
	analyticsDatePrefix   = "anevtd"
	analyticsUserPrefix   = "anevtu"
	analyticsIDSeq        = "anevtseq"
)

// makeKnowledgeDocKey generates a key for a knowledge document by ID.
func makeKnowledgeDocKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", knowledgeDocPrefix, id))
}

// makeKnowledgeEntityKey generates a composite key for the entity index.
// Format: prefix:entityID:id
func makeKnowledgeEntityKey(entityID string, id core.ID) []byte {
	prefix := []byte(knowledgeEntityPrefix + ":" + entityID + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialKnowledgeEntityKey generates a partial key for entity queries.
func makePartialKnowledgeEntityKey(entityID string) []byte {
	return []byte(knowledgeEntityPrefix + ":" + entityID + ":")
}

// makeTrainingSetKey generates a key for an entity's training material set.
func makeTrainingSetKey(entityID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", trainingSetPrefix, entityID))
}

// makeAnalyticsKey generates a key for an analytics event by sequence ID.
func makeAnalyticsKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s:%d", analyticsPrefix, id))
}

// makeAnalyticsDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeAnalyticsDateKey(timestamp time.Time, id uint64) []byte {
	prefix := []byte(analyticsDatePrefix + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], id)
	return buf
}

// makePartialAnalyticsDateKey generates a partial key for date range queries.
func makePartialAnalyticsDateKey(timestamp time.Time) []byte {
	prefix := []byte(analyticsDatePrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeAnalyticsUserKey generates a composite key for the user index.
// Format: prefix:userID:timestamp:id
func makeAnalyticsUserKey(userID string, timestamp time.Time, id uint64) []byte {
	prefix := []byte(analyticsUserPrefix + ":" + userID + ":")
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], id)
	return buf
}

// makePartialAnalyticsUserKey generates a partial key for user queries.
func makePartialAnalyticsUserKey(userID string) []byte {
	return []byte(analyticsUserPrefix + ":" + userID + ":")
}
