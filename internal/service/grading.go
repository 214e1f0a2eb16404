package service

import (
	"encoding/json"
	"sort"
	"strings"

	"hr_training_backend/internal/model"
)

// answerKey 每种题型一个实现，各自持有类型化的标准答案并负责判分。
// 新增题型只需要加一个实现和 parseAnswerKey 里的一个分支。
type answerKey interface {
	isCorrect(submitted json.RawMessage) bool
}

// singleKey 单选：去空格、转小写后全等比较
type singleKey struct {
	value string
}

func (k singleKey) isCorrect(submitted json.RawMessage) bool {
	sub, ok := decodeString(submitted)
	if !ok {
		return false
	}
	return canonicalString(sub) == canonicalString(k.value)
}

// multiKey 多选：两边都规整成「排序+小写+去重+竖线连接」的串，比较与顺序无关
type multiKey struct {
	values []string
}

func (k multiKey) isCorrect(submitted json.RawMessage) bool {
	var sub []string
	if err := json.Unmarshal(submitted, &sub); err != nil {
		return false
	}
	return canonicalSet(sub) == canonicalSet(k.values)
}

// trueFalseKey 判断题：提交值可能是布尔、"true"/"false" 字符串或 0/1
type trueFalseKey struct {
	value bool
}

func (k trueFalseKey) isCorrect(submitted json.RawMessage) bool {
	sub, ok := decodeBool(submitted)
	if !ok {
		return false
	}
	return sub == k.value
}

// shortKey 简答：忽略大小写和首尾空格，命中任意一个可接受答案即正确
type shortKey struct {
	accepted []string
}

func (k shortKey) isCorrect(submitted json.RawMessage) bool {
	sub, ok := decodeString(submitted)
	if !ok {
		return false
	}
	canonical := canonicalString(sub)
	for _, a := range k.accepted {
		if canonicalString(a) == canonical {
			return true
		}
	}
	return false
}

// neverCorrect 答案键缺失或损坏时的兜底：照常计入总分但永远判错
type neverCorrect struct{}

func (neverCorrect) isCorrect(json.RawMessage) bool {
	return false
}

// parseAnswerKey 把存储里的答案 JSON 解析成对应题型的 key。
// 形状不符（坏数据）不报错，降级为 neverCorrect。
func parseAnswerKey(q model.Question) answerKey {
	switch q.QuestionType {
	case model.QuestionSingle:
		if v, ok := decodeString(q.Answer); ok {
			return singleKey{value: v}
		}
	case model.QuestionMulti:
		var values []string
		if err := json.Unmarshal(q.Answer, &values); err == nil {
			return multiKey{values: values}
		}
	case model.QuestionTrueFalse:
		if v, ok := decodeBool(q.Answer); ok {
			return trueFalseKey{value: v}
		}
	case model.QuestionShort:
		// 简答的标准答案允许两种形状：单个字符串，或多个可接受答案的数组
		if v, ok := decodeString(q.Answer); ok {
			return shortKey{accepted: []string{v}}
		}
		var values []string
		if err := json.Unmarshal(q.Answer, &values); err == nil {
			return shortKey{accepted: values}
		}
	}
	return neverCorrect{}
}

func canonicalString(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func canonicalSet(values []string) string {
	uniq := make(map[string]bool, len(values))
	for _, v := range values {
		uniq[canonicalString(v)] = true
	}
	list := make([]string, 0, len(uniq))
	for v := range uniq {
		list = append(list, v)
	}
	sort.Strings(list)
	return strings.Join(list, "|")
}

func decodeString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func decodeBool(raw json.RawMessage) (bool, bool) {
	if len(raw) == 0 {
		return false, false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch canonicalString(s) {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
		return false, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0, true
	}
	return false, false
}

// roundPercent 四舍五入到最近整数百分比，total 为 0 时定义为 0
func roundPercent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int((float64(part)/float64(total))*100 + 0.5)
}
