package scoring

// stopwords is the English set published as the stopwords-en package
// (stopwords-iso), which merges the SMART, Lextek long and ranks.nl long
// lists. Entries with apostrophes or hyphens can never match a cleaned token
// and words shorter than three letters are dropped by length before lookup,
// so neither is listed.
var stopwords = toSet([]string{
	"able", "about", "above", "abst", "accordance", "according", "accordingly",
	"across", "act", "actually", "added", "adj", "affected", "affecting",
	"affects", "after", "afterwards", "again", "against", "all", "allow",
	"allows", "almost", "alone", "along", "already", "also", "although",
	"always", "among", "amongst", "and", "announce", "another", "any",
	"anybody", "anyhow", "anymore", "anyone", "anything", "anyway", "anyways",
	"anywhere", "apart", "apparently", "appear", "appreciate", "appropriate",
	"approximately", "are", "area", "areas", "arent", "arise", "around",
	"aside", "ask", "asked", "asking", "asks", "associated", "auth",
	"available", "away", "awfully", "back", "backed", "backing", "backs",
	"became", "because", "become", "becomes", "becoming", "been", "before",
	"beforehand", "began", "beginning", "beginnings", "begins", "behind",
	"being", "beings", "believe", "below", "beside", "besides", "best",
	"better", "between", "beyond", "big", "biol", "both", "brief", "briefly",
	"but", "came", "can", "cannot", "cant", "case", "cases", "cause", "causes",
	"certain", "certainly", "changes", "clear", "clearly", "com", "come",
	"comes", "concerning", "consequently", "consider", "considering", "contain",
	"containing", "contains", "corresponding", "could", "couldnt", "course",
	"currently", "date", "definitely", "described", "despite", "did", "didnt",
	"differ", "different", "differently", "does", "doesnt", "doing", "done",
	"dont", "down", "downed", "downing", "downs", "downwards", "during", "each",
	"early", "edu", "effect", "eight", "eighty", "either", "eleven", "else",
	"elsewhere", "end", "ended", "ending", "ends", "enough", "entirely",
	"especially", "etc", "even", "evenly", "ever", "every", "everybody",
	"everyone", "everything", "everywhere", "exactly", "example", "except",
	"face", "faces", "fact", "facts", "far", "felt", "few", "fifth", "fifty",
	"find", "finds", "first", "five", "fix", "followed", "following", "follows",
	"for", "former", "formerly", "forth", "forty", "found", "four", "from",
	"full", "fully", "further", "furthered", "furthering", "furthermore",
	"furthers", "gave", "general", "generally", "get", "gets", "getting",
	"give", "given", "gives", "giving", "goes", "going", "gone", "good",
	"goods", "got", "gotten", "great", "greater", "greatest", "greetings",
	"group", "grouped", "grouping", "groups", "had", "hadnt", "happens",
	"hardly", "has", "hasnt", "have", "havent", "having", "hed", "hello",
	"help", "hence", "her", "here", "hereafter", "hereby", "herein", "heres",
	"hereupon", "hers", "herself", "hes", "hid", "high", "higher", "highest",
	"him", "himself", "his", "hither", "home", "hopefully", "how", "howbeit",
	"however", "hundred", "ignored", "immediate", "immediately", "importance",
	"important", "inasmuch", "inc", "indeed", "index", "indicate", "indicated",
	"indicates", "information", "inner", "insofar", "instead", "interest",
	"interested", "interesting", "interests", "into", "invention", "inward",
	"isnt", "itd", "its", "itself", "just", "keep", "keeps", "kept", "keys",
	"kind", "knew", "know", "known", "knows", "large", "largely", "last",
	"lately", "later", "latest", "latter", "latterly", "least", "less", "lest",
	"let", "lets", "like", "liked", "likely", "line", "little", "long",
	"longer", "longest", "look", "looking", "looks", "ltd", "made", "mainly",
	"make", "making", "man", "many", "may", "maybe", "mean", "meanwhile",
	"member", "members", "men", "merely", "might", "million", "miss", "more",
	"moreover", "most", "mostly", "mrs", "much", "mug", "must", "myself",
	"name", "namely", "nay", "near", "nearly", "necessarily", "necessary",
	"need", "needed", "needing", "needs", "neither", "never", "nevertheless",
	"new", "newer", "newest", "next", "nine", "ninety", "nobody", "non", "none",
	"noone", "nor", "normally", "nos", "not", "noted", "nothing", "novel",
	"now", "nowhere", "number", "numbers", "obtain", "obtained", "obviously",
	"off", "often", "okay", "old", "older", "oldest", "omitted", "once", "one",
	"ones", "only", "onto", "open", "opened", "opening", "opens", "ord",
	"order", "ordered", "ordering", "orders", "other", "others", "otherwise",
	"ought", "our", "ours", "ourselves", "out", "outside", "over", "overall",
	"owing", "own", "page", "pages", "part", "parted", "particular",
	"particularly", "parting", "parts", "per", "perhaps", "place", "placed",
	"places", "please", "plus", "point", "pointed", "pointing", "points",
	"poorly", "possible", "possibly", "potentially", "predominantly", "present",
	"presented", "presenting", "presents", "presumably", "previously",
	"primarily", "probably", "problem", "problems", "promptly", "proud",
	"provides", "put", "puts", "que", "quickly", "quite", "ran", "rather",
	"readily", "really", "reasonably", "recent", "recently", "ref", "refs",
	"regarding", "regardless", "regards", "related", "relatively", "research",
	"respectively", "resulted", "resulting", "results", "right", "room",
	"rooms", "run", "said", "same", "saw", "say", "saying", "says", "sec",
	"second", "secondly", "seconds", "section", "see", "seeing", "seem",
	"seemed", "seeming", "seems", "seen", "sees", "self", "selves", "sensible",
	"sent", "serious", "seriously", "seven", "several", "shall", "she", "shes",
	"should", "shouldnt", "show", "showed", "showing", "shown", "showns",
	"shows", "side", "sides", "significant", "significantly", "similar",
	"similarly", "since", "six", "slightly", "small", "smaller", "smallest",
	"some", "somebody", "somehow", "someone", "somethan", "something",
	"sometime", "sometimes", "somewhat", "somewhere", "soon", "sorry",
	"specifically", "specified", "specify", "specifying", "state", "states",
	"still", "stop", "strongly", "sub", "substantially", "successfully", "such",
	"sufficiently", "suggest", "sup", "sure", "take", "taken", "tell", "tends",
	"than", "thank", "thanks", "thanx", "that", "thats", "the", "their",
	"theirs", "them", "themselves", "then", "thence", "there", "thereafter",
	"thereby", "thered", "therefore", "therein", "thereof", "therere", "theres",
	"thereto", "thereupon", "these", "they", "theyd", "theyre", "thing",
	"things", "think", "thinks", "third", "this", "thorough", "thoroughly",
	"those", "thou", "though", "thoughh", "thought", "thoughts", "thousand",
	"three", "throug", "through", "throughout", "thru", "thus", "til", "tip",
	"today", "together", "too", "took", "toward", "towards", "tried", "tries",
	"truly", "try", "trying", "turn", "turned", "turning", "turns", "twice",
	"two", "under", "unfortunately", "unless", "unlikely", "until", "unto",
	"upon", "ups", "use", "used", "useful", "usefully", "usefulness", "uses",
	"using", "usually", "value", "various", "very", "via", "viz", "vol", "vols",
	"want", "wanted", "wanting", "wants", "was", "wasnt", "way", "ways", "wed",
	"welcome", "well", "wells", "went", "were", "werent", "what", "whatever",
	"whats", "when", "whence", "whenever", "where", "whereafter", "whereas",
	"whereby", "wherein", "wheres", "whereupon", "wherever", "whether", "which",
	"while", "whim", "whither", "who", "whod", "whoever", "whole", "whom",
	"whos", "whose", "why", "widely", "will", "willing", "wish", "with",
	"within", "without", "wonder", "wont", "words", "work", "worked", "working",
	"works", "world", "would", "wouldnt", "year", "years", "yes", "yet", "you",
	"youd", "young", "younger", "youngest", "your", "youre", "yours",
	"yourself", "yourselves", "zero",
})

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
