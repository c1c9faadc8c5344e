package memory

import (
	"github.com/riskibarqy/futdraft/internal/domain/player"
	"github.com/riskibarqy/futdraft/internal/domain/position"
	"github.com/riskibarqy/futdraft/internal/domain/trivia"
)

func seedPlayer(slug, name string, rating int, pos position.Code, value, club, nation string) player.Player {
	return player.Player{
		Slug:      slug,
		Name:      name,
		FullName:  name,
		Rating:    rating,
		Position:  pos,
		ValueText: value,
		Club:      club,
		Nation:    nation,
	}
}

// SeedPlayers is a small catalog that covers every position group.
func SeedPlayers() []player.Player {
	return []player.Player{
		seedPlayer("thibaut-courtois", "Courtois", 90, "GK", "€42M", "Real Madrid", "Belgium"),
		seedPlayer("alisson", "Alisson", 89, "GK", "€38.5M", "Liverpool", "Brazil"),
		seedPlayer("gianluigi-donnarumma", "Donnarumma", 87, "GK", "€45M", "Paris SG", "Italy"),
		seedPlayer("emiliano-martinez", "E. Martínez", 86, "GK", "€29M", "Aston Villa", "Argentina"),
		seedPlayer("virgil-van-dijk", "Van Dijk", 89, "CB", "€51M", "Liverpool", "Netherlands"),
		seedPlayer("ruben-dias", "Rúben Dias", 88, "CB", "€77M", "Manchester City", "Portugal"),
		seedPlayer("antonio-rudiger", "Rüdiger", 87, "CB", "€52.5M", "Real Madrid", "Germany"),
		seedPlayer("william-saliba", "Saliba", 87, "CB", "€88M", "Arsenal", "France"),
		seedPlayer("marquinhos", "Marquinhos", 86, "CB", "€48M", "Paris SG", "Brazil"),
		seedPlayer("theo-hernandez", "Theo Hernández", 86, "LB", "€75M", "AC Milan", "France"),
		seedPlayer("alejandro-grimaldo", "Grimaldo", 85, "LB", "€52M", "Leverkusen", "Spain"),
		seedPlayer("achraf-hakimi", "Hakimi", 85, "RB", "€64M", "Paris SG", "Morocco"),
		seedPlayer("trent-alexander-arnold", "Alexander-Arnold", 86, "RB", "€71M", "Real Madrid", "England"),
		seedPlayer("rodri", "Rodri", 91, "CDM", "€112M", "Manchester City", "Spain"),
		seedPlayer("declan-rice", "Rice", 87, "CDM", "€92M", "Arsenal", "England"),
		seedPlayer("joshua-kimmich", "Kimmich", 86, "CDM", "€54M", "FC Bayern", "Germany"),
		seedPlayer("jude-bellingham", "Bellingham", 90, "CAM", "€180M", "Real Madrid", "England"),
		seedPlayer("kevin-de-bruyne", "De Bruyne", 89, "CM", "€51.5M", "Napoli", "Belgium"),
		seedPlayer("federico-valverde", "Valverde", 89, "CM", "€121M", "Real Madrid", "Uruguay"),
		seedPlayer("pedri", "Pedri", 87, "CM", "€99M", "FC Barcelona", "Spain"),
		seedPlayer("martin-odegaard", "Ødegaard", 89, "CAM", "€103M", "Arsenal", "Norway"),
		seedPlayer("jamal-musiala", "Musiala", 88, "CAM", "€118M", "FC Bayern", "Germany"),
		seedPlayer("bukayo-saka", "Saka", 88, "RM", "€126M", "Arsenal", "England"),
		seedPlayer("phil-foden", "Foden", 87, "LM", "€104M", "Manchester City", "England"),
		seedPlayer("vinicius-junior", "Vini Jr.", 90, "LW", "€171M", "Real Madrid", "Brazil"),
		seedPlayer("khvicha-kvaratskhelia", "Kvaratskhelia", 87, "LW", "€97M", "Paris SG", "Georgia"),
		seedPlayer("mohamed-salah", "Salah", 89, "RW", "€68M", "Liverpool", "Egypt"),
		seedPlayer("lamine-yamal", "Lamine Yamal", 86, "RW", "€150M", "FC Barcelona", "Spain"),
		seedPlayer("kylian-mbappe", "Mbappé", 91, "ST", "€181.5M", "Real Madrid", "France"),
		seedPlayer("erling-haaland", "Haaland", 91, "ST", "€185M", "Manchester City", "Norway"),
		seedPlayer("harry-kane", "Kane", 90, "ST", "€103M", "FC Bayern", "England"),
		seedPlayer("lautaro-martinez", "Lautaro", 88, "ST", "€99.5M", "Inter", "Argentina"),
		seedPlayer("antoine-griezmann", "Griezmann", 87, "CF", "€35M", "Atlético de Madrid", "France"),
		seedPlayer("youth-prospect", "Prospect", 62, "CB", "€850K", "Free Agent", "Unknown"),
	}
}

func seedQuestion(questionID, text string, a, b, c, d string, correct trivia.Option, reward int64) trivia.Question {
	return trivia.Question{
		ID:   questionID,
		Text: text,
		Options: map[trivia.Option]string{
			trivia.OptionA: a,
			trivia.OptionB: b,
			trivia.OptionC: c,
			trivia.OptionD: d,
		},
		CorrectAnswer: correct,
		RewardAmount:  reward,
	}
}

func SeedQuestions() []trivia.Question {
	return []trivia.Question{
		seedQuestion("q-world-cup-2010", "Which country won the 2010 FIFA World Cup?",
			"Netherlands", "Spain", "Germany", "Brazil", trivia.OptionB, 50_000_000),
		seedQuestion("q-invincibles", "Which club went unbeaten through the 2003/04 Premier League?",
			"Manchester United", "Chelsea", "Arsenal", "Liverpool", trivia.OptionC, 50_000_000),
		seedQuestion("q-ballon-dor", "Who has won the most Ballon d'Or awards?",
			"Lionel Messi", "Cristiano Ronaldo", "Michel Platini", "Johan Cruyff", trivia.OptionA, 25_000_000),
		seedQuestion("q-ucl-titles", "Which club has the most European Cup titles?",
			"AC Milan", "Bayern Munich", "Liverpool", "Real Madrid", trivia.OptionD, 25_000_000),
	}
}
