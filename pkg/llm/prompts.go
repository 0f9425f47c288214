package llm

import (
	"fmt"
	"strings"
)

// CleanTranscriptPrompt asks the model to normalize a raw machine-generated
// transcript segment without altering its wording.
func CleanTranscriptPrompt(rawText string) string {
	return fmt.Sprintf(`You are an expert in text formatting and linguistics. The following text is a raw, machine-generated transcript of a podcast segment. It may lack proper capitalization, punctuation, and sentence structure. Your task is to process this text and transform it into a clean, readable, and well-formatted paragraph. Ensure that you correct capitalization, add appropriate punctuation (periods, commas, question marks), and structure the text for maximum readability. Do not alter the underlying words or meaning. Here is the raw text:

%s

Please provide only the cleaned text without any additional commentary.`, rawText)
}

// SegmentTitlePrompt asks the model for a 7-10 word title for a cleaned
// transcript segment.
func SegmentTitlePrompt(cleanedText string) string {
	return fmt.Sprintf(`You are a skilled content editor. I will provide you with a segment of a podcast transcript. Based on the content of this segment, generate a concise and descriptive title, no more than 7-10 words long. The title should capture the main topic or idea being discussed. If you were to give a title to this segment, what would it be? Here is the segment:

%s

Please provide only the title without any additional text or quotation marks.`, cleanedText)
}

// ExtractInsightsPrompt builds the per-chunk extraction prompt. The model is
// instructed to answer with one category header line per configured category
// followed by one bullet line per insight, which is the exact shape the
// insights parser expects.
func ExtractInsightsPrompt(chunkText string, categories []string) string {
	var list strings.Builder
	for i, category := range categories {
		fmt.Fprintf(&list, "%d. %s\n", i+1, category)
	}

	return fmt.Sprintf(`# Insight Extraction
Here is the podcast transcript chunk you need to analyze:

<transcript_chunk>
%s
</transcript_chunk>

You are an expert podcast analyst tasked with extracting key insights from podcast transcripts. Carefully read the chunk and extract specific, valuable, and distinct insights, organizing them into the following categories:

%s
Instructions:
1. Use the same language and vocabulary as the speakers in the transcript.
2. Ensure each insight is specific and distinct. Avoid generic statements like "do better in school".
3. Place each insight under exactly one category.
4. For quotes, include the person being quoted and the exact words.

Present your findings in the following format, with a header line for each category followed by one bullet per insight:

[Category Name]:
- [Insight described in one sentence]
- [Another insight described in one sentence]

[Repeat for each category. Leave a category out if the chunk contains nothing for it.]`, chunkText, list.String())
}
