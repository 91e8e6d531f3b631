package retrieval

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"sync"

	"FitBuddy/internal/config"
	"FitBuddy/pkg/util"
	"FitBuddy/pkg/zlog"

	"go.uber.org/zap"
)

// 检索语料库：进程启动后只读，懒加载一次。语料是构建期静态输入，
// 更新内容需要重启进程。

const (
	humanMarker     = "###Human:"
	assistantMarker = "###Assistant:"
)

// Entry 一条问答对，加载后不可变
type Entry struct {
	Question string
	Answer   string
}

// Index 基于词项重叠打分的问答检索索引
type Index struct {
	entries []Entry
}

var (
	defaultIndex *Index
	once         sync.Once
)

// Default 返回进程级单例，首次调用时从配置的语料文件加载
func Default() *Index {
	once.Do(func() {
		path := config.GetConfig().ChatConfig.DatasetPath
		idx, err := Load(path)
		if err != nil {
			zlog.Error("failed to load retrieval corpus", zap.String("path", path), zap.Error(err))
			idx = &Index{}
		}
		defaultIndex = idx
	})
	return defaultIndex
}

// Load 解析定界对话格式的语料文件。缺失任一标记的记录直接丢弃。
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}

	idx := &Index{}
	for _, record := range records {
		if len(record) == 0 {
			continue
		}
		entry, ok := parseRecord(record[0])
		if ok {
			idx.entries = append(idx.entries, entry)
		}
	}

	zlog.Info("retrieval corpus loaded", zap.String("path", path), zap.Int("entries", len(idx.entries)))
	return idx, nil
}

func parseRecord(text string) (Entry, bool) {
	humanSplit := strings.SplitN(text, humanMarker, 2)
	if len(humanSplit) < 2 {
		return Entry{}, false
	}
	assistantSplit := strings.SplitN(humanSplit[1], assistantMarker, 2)
	if len(assistantSplit) < 2 {
		return Entry{}, false
	}
	return Entry{
		Question: strings.TrimSpace(assistantSplit[0]),
		Answer:   strings.TrimSpace(assistantSplit[1]),
	}, true
}

// Size 语料条目数
func (idx *Index) Size() int {
	return len(idx.entries)
}

// FindRelevantContext 按查询词项与语料的子串重叠打分，返回拼接好的
// "Q: …\nA: …" 上下文块。无命中返回空串，从不返回错误。
func (idx *Index) FindRelevantContext(query string, limit int) string {
	if len(idx.entries) == 0 || query == "" {
		return ""
	}
	if limit <= 0 {
		limit = 3
	}

	// 丢弃 ≤3 字符的词项，近似停用词过滤
	var queryTerms []string
	for _, t := range strings.Fields(strings.ToLower(query)) {
		if len(t) > 3 {
			queryTerms = append(queryTerms, t)
		}
	}
	if len(queryTerms) == 0 {
		return ""
	}

	type scoredEntry struct {
		entry Entry
		score int
	}
	var scored []scoredEntry
	for _, entry := range idx.entries {
		text := strings.ToLower(entry.Question + " " + entry.Answer)
		score := 0
		for _, term := range queryTerms {
			if strings.Contains(text, term) {
				score++
			}
		}
		if score > 0 {
			scored = append(scored, scoredEntry{entry: entry, score: score})
		}
	}
	if len(scored) == 0 {
		return ""
	}

	// 稳定排序：同分保持语料原始顺序，保证同输入同输出
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	blocks := make([]string, 0, len(scored))
	for _, s := range scored {
		blocks = append(blocks, "Q: "+s.entry.Question+"\nA: "+s.entry.Answer)
	}
	return strings.Join(blocks, "\n\n")
}

// Suggestions 随机抽取 count 条不重复的问题作为对话开场建议，截断到 60 字符
func (idx *Index) Suggestions(count int) []string {
	if len(idx.entries) == 0 || count <= 0 {
		return []string{}
	}

	perm := rand.Perm(len(idx.entries))
	if count > len(perm) {
		count = len(perm)
	}

	out := make([]string, 0, count)
	for _, i := range perm[:count] {
		out = append(out, util.TruncateWithEllipsis(idx.entries[i].Question, 60))
	}
	return out
}
