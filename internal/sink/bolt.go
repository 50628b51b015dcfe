package sink

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/project-flotta/sys-metrics-sim/internal/host"
)

// Bolt keeps documents in a local bbolt file, one bucket per index and
// keys ordered by insertion.
type Bolt struct {
	db     *bolt.DB
	path   string
	bucket []byte
}

func NewBolt(dbPath, index string) (*Bolt, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("bolt sink needs a file path")
	}
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt database: %w", err)
	}
	return &Bolt{db: db, path: dbPath, bucket: []byte(index)}, nil
}

func (b *Bolt) EnsureSchema(context.Context) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(b.bucket)
		return err
	})
}

func (b *Bolt) Write(_ context.Context, doc *host.Document) error {
	value, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("cannot marshal document: %w", err)
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists(b.bucket)
		if err != nil {
			return err
		}
		seq, err := bkt.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return bkt.Put(key, value)
	})
}

// Documents returns every stored document in insertion order.
func (b *Bolt) Documents() ([]*host.Document, error) {
	docs := []*host.Document{}
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(b.bucket)
		if bkt == nil {
			return nil
		}
		return bkt.ForEach(func(_, v []byte) error {
			doc := &host.Document{}
			if err := json.Unmarshal(v, doc); err != nil {
				return err
			}
			docs = append(docs, doc)
			return nil
		})
	})
	return docs, err
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

func (b *Bolt) String() string {
	return fmt.Sprintf("bolt %s (bucket %s)", b.path, b.bucket)
}
