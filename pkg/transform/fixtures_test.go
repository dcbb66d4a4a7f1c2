package transform

const petstore = `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      summary: List all pets
      tags: [pets]
      parameters:
        - $ref: "#/components/parameters/limit"
      responses:
        "200":
          description: A list of pets
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: "#/components/schemas/Pet"
        default:
          $ref: "#/components/responses/Error"
    post:
      operationId: createPet
      tags: [pets]
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: "#/components/schemas/Pet"
      responses:
        "201":
          description: Created
  /pets/{petId}:
    parameters:
      - name: petId
        in: path
        schema:
          type: integer
    get:
      operationId: showPetById
      tags: [pets]
      responses:
        "200":
          description: Expected response to a valid request
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Pet"
        "404":
          $ref: "#/components/responses/Error"
components:
  schemas:
    Pet:
      type: object
      required: [id, name]
      properties:
        id:
          type: integer
          format: int64
        name:
          type: string
        status:
          type: string
          enum: [available, sold]
        tag:
          type: string
          nullable: true
    Error:
      type: object
      required: [code, message]
      properties:
        code: {type: integer}
        message: {type: string}
  parameters:
    limit:
      name: limit
      in: query
      description: How many items to return at one time
      schema:
        type: integer
  responses:
    Error:
      description: unexpected error
      content:
        application/json:
          schema:
            $ref: "#/components/schemas/Error"
`
