package validators

import "go.mongodb.org/mongo-driver/bson"

var ReceiptValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"reservation_id",
			"folio",
			"amount",
			"method",
			"concept",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"reservation_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"folio": bson.M{
				"bsonType": "string",
				"pattern":  `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`,
			},

			"amount": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"method": bson.M{
				"enum": []string{"cash", "card", "transfer"},
			},

			"concept": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
