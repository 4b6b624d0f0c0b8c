package validators

import "go.mongodb.org/mongo-driver/bson"

var dayHoursSchema = bson.M{
	"bsonType": "object",
	"required": []string{"closed"},
	"properties": bson.M{
		"open": bson.M{
			"bsonType": "string",
			"pattern":  `^(|([01]\d|2[0-3]):[0-5]\d)$`,
		},
		"close": bson.M{
			"bsonType": "string",
			"pattern":  `^(|([01]\d|2[0-3]):[0-5]\d)$`,
		},
		"closed": bson.M{
			"bsonType": "bool",
		},
	},
}

// SettingsValidator only constrains the operatingHours document; other
// settings documents pass through.
var SettingsValidator = bson.M{
	"$or": []bson.M{
		{"_id": bson.M{"$ne": "operatingHours"}},
		{"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"},
			"properties": bson.M{
				"monday":    dayHoursSchema,
				"tuesday":   dayHoursSchema,
				"wednesday": dayHoursSchema,
				"thursday":  dayHoursSchema,
				"friday":    dayHoursSchema,
				"saturday":  dayHoursSchema,
				"sunday":    dayHoursSchema,
			},
		}},
	},
}

var SlotCounterValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "confirmed"},
		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},
			"date": bson.M{
				"bsonType": "string",
			},
			"timeSlot": bson.M{
				"bsonType": "string",
			},
			"confirmed": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},
		},
	},
}
