/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package ddb implements the datastore.Adapter contract on AWS DynamoDB.

Records arrive column-keyed and fully cast, so the adapter only marshals
them with attributevalue and issues PutItem / GetItem calls. A record with
no primary-key value gets a UUID assigned before the write, matching the
"storage assigns the primary key" contract of the create pipeline.

CompileFilter and FilterScan translate a serialized predicate tree into a
DynamoDB filter expression using #name / :value placeholders.

Integration tests against a live table are tagged "integration" and read
AWS credentials from the environment (a .env file is honored via godotenv).
*/
package ddb
