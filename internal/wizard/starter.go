package wizard

// StarterCards is the built-in pack added by starter_pack: true.
var StarterCards = []string{
	"Albert Einstein",
	"Statue of Liberty",
	"Cleopatra",
	"Roller coaster",
	"Harry Potter",
	"Pizza delivery",
	"Mount Everest",
	"Beethoven",
	"Time machine",
	"Frankenstein",
	"Traffic jam",
	"Mona Lisa",
	"Karaoke",
	"Black hole",
	"Robin Hood",
	"Birthday cake",
	"Submarine",
	"Napoleon",
	"Snowman",
	"Magic carpet",
}
