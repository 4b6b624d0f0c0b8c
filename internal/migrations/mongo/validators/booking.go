package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"userId",
			"date",
			"timeSlot",
			"sessionType",
			"sessionName",
			"duration",
			"price",
			"status",
			"createdAt",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"userId": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"userEmail": bson.M{
				"bsonType": "string",
			},

			"userName": bson.M{
				"bsonType": "string",
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"timeSlot": bson.M{
				"bsonType": "string",
				"pattern":  `^(0[1-9]|1[0-2]):[0-5]\d (AM|PM)$`,
			},

			"sessionType": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 32,
			},

			"sessionName": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"duration": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"price": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"notes": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"confirmed",
					"cancelled",
				},
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},

			"cancelledAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
