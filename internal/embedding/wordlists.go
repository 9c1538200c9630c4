package embedding

// Fixed word lists backing the category and sentiment feature slots. These are
// part of the similarity contract: changing a list changes every stored score,
// so additions require a full reindex.

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "had": {}, "has": {},
	"have": {}, "he": {}, "her": {}, "his": {}, "i": {}, "if": {}, "in": {},
	"is": {}, "it": {}, "its": {}, "me": {}, "my": {}, "of": {}, "on": {},
	"or": {}, "she": {}, "so": {}, "that": {}, "the": {}, "their": {},
	"them": {}, "they": {}, "this": {}, "to": {}, "was": {}, "we": {},
	"were": {}, "with": {}, "you": {},
}

var emotionWords = map[string]struct{}{
	"happy": {}, "sad": {}, "angry": {}, "excited": {}, "anxious": {},
	"grateful": {}, "lonely": {}, "proud": {}, "scared": {}, "calm": {},
	"frustrated": {}, "hopeful": {}, "tired": {}, "overwhelmed": {},
	"content": {}, "nervous": {}, "joyful": {}, "stressed": {}, "guilty": {},
	"relieved": {},
}

var timeWords = map[string]struct{}{
	"today": {}, "yesterday": {}, "tomorrow": {}, "morning": {},
	"afternoon": {}, "evening": {}, "night": {}, "week": {}, "weekend": {},
	"month": {}, "year": {}, "spring": {}, "summer": {}, "autumn": {},
	"fall": {}, "winter": {}, "monday": {}, "friday": {}, "soon": {},
	"later": {},
}

var relationshipWords = map[string]struct{}{
	"mom": {}, "dad": {}, "mother": {}, "father": {}, "sister": {},
	"brother": {}, "friend": {}, "friends": {}, "family": {}, "partner": {},
	"wife": {}, "husband": {}, "boyfriend": {}, "girlfriend": {}, "son": {},
	"daughter": {}, "coworker": {}, "boss": {}, "neighbor": {}, "grandma": {},
	"grandpa": {},
}

var positiveWords = map[string]struct{}{
	"love": {}, "great": {}, "wonderful": {}, "amazing": {}, "good": {},
	"beautiful": {}, "fun": {}, "enjoyed": {}, "success": {}, "win": {},
	"laughed": {}, "peaceful": {}, "best": {}, "better": {}, "progress": {},
}

var negativeWords = map[string]struct{}{
	"hate": {}, "terrible": {}, "awful": {}, "bad": {}, "worst": {},
	"failed": {}, "failure": {}, "cried": {}, "pain": {}, "hurt": {},
	"worried": {}, "worse": {}, "lost": {}, "alone": {}, "broken": {},
}
