package scheduler

import "strings"

// Chunk 将文本按空白切词后分组为片段。
// 每组词数 = clamp(总词数/divisor, 1, maxTokens)，
// 与源行为一致：chunk_size = min(max, max(1, total/divisor))。
// 按顺序以单个空格重连所有片段可还原 strings.Fields 归一化后的原文。
func Chunk(text string, divisor, maxTokens int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if divisor < 1 {
		divisor = 1
	}
	if maxTokens < 1 {
		maxTokens = 1
	}

	size := len(words) / divisor
	if size < 1 {
		size = 1
	}
	if size > maxTokens {
		size = maxTokens
	}

	chunks := make([]string, 0, (len(words)+size-1)/size)
	for i := 0; i < len(words); i += size {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}
