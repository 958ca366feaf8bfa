package ui

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	keyBattleStart    = "Battle!"
	keyEnemyDefeated  = "Defeated %s!"
	keyPlayerDefeated = "Player Is Dead, SAD!"
)

// supported lists the catalog languages; the first is the fallback.
var supported = []language.Tag{
	language.English,
	language.TraditionalChinese,
}

func newCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	entries := []struct {
		tag      language.Tag
		key, msg string
	}{
		{language.English, keyBattleStart, "Battle!"},
		{language.English, keyEnemyDefeated, "Defeated %s!"},
		{language.English, keyPlayerDefeated, "Player Is Dead, SAD!"},
		{language.TraditionalChinese, keyBattleStart, "戰鬥！"},
		{language.TraditionalChinese, keyEnemyDefeated, "擊敗了 %s！"},
		{language.TraditionalChinese, keyPlayerDefeated, "玩家倒下了，好慘！"},
	}
	for _, e := range entries {
		if err := b.SetString(e.tag, e.key, e.msg); err != nil {
			return nil, fmt.Errorf("catalog %s %q: %w", e.tag, e.key, err)
		}
	}
	return b, nil
}

// Messages renders battle strings in one language.
type Messages struct {
	tag language.Tag
	p   *message.Printer
}

// NewMessages picks the closest supported language to lang (a BCP 47 tag,
// e.g. "en", "zh-TW"). Unsupported languages fall back to English.
func NewMessages(lang string) (*Messages, error) {
	want, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("ui language %q: %w", lang, err)
	}
	_, idx, _ := language.NewMatcher(supported).Match(want)
	tag := supported[idx]

	cat, err := newCatalog()
	if err != nil {
		return nil, err
	}
	return &Messages{tag: tag, p: message.NewPrinter(tag, message.Catalog(cat))}, nil
}

// Language returns the language strings are rendered in.
func (m *Messages) Language() language.Tag { return m.tag }

func (m *Messages) BattleStart() string { return m.p.Sprintf(keyBattleStart) }

func (m *Messages) EnemyDefeated(name string) string {
	return m.p.Sprintf(keyEnemyDefeated, name)
}

func (m *Messages) PlayerDefeated() string { return m.p.Sprintf(keyPlayerDefeated) }
