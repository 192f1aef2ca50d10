package bot

import (
	"context"
	"errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"time"
)

const (
	CollPreferences = "preferences"

	OptionNFT        = "nft"
	OptionCollection = "collection"

	preferencesTimeout = 2 * time.Second
)

// Configuration is a chat's preferences, written by the admin tooling and
// only read here.
type Configuration struct {
	Bot     string  `bson:"bot"`    // bot username
	ChatId  string  `bson:"chatId"` // discord channel id or telegram chat id
	Options Options `bson:"options"`
}

// Options switches previews on and off, a missing key means on.
type Options = map[string]bool

func enabled(opts Options, key string) bool {
	v, ok := opts[key]
	return !ok || v
}

type Preferences struct {
	db    *mongo.Database
	Sugar *zap.SugaredLogger
}

// NewPreferences returns preferences backed by db, everything is enabled when db is nil.
func NewPreferences(db *mongo.Database, sugar *zap.SugaredLogger) *Preferences {
	return &Preferences{db: db, Sugar: sugar}
}

// Options never fails, a broken store means default options.
func (p *Preferences) Options(ctx context.Context, bot, chatId string) Options {
	if p == nil || p.db == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, preferencesTimeout)
	defer cancel()

	var conf Configuration
	err := p.db.Collection(CollPreferences).FindOne(ctx, bson.D{
		{Key: "bot", Value: bot},
		{Key: "chatId", Value: chatId},
	}).Decode(&conf)
	if err == nil {
		return conf.Options
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		p.Sugar.Errorf("load preferences of %s/%s error: %s", bot, chatId, err)
	}
	return nil
}
