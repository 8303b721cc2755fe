// Package graph provides the GraphQL schema definition.
package graph

import (
	"github.com/graphql-go/graphql"
)

func nonNull(t graphql.Output) *graphql.NonNull {
	return graphql.NewNonNull(t)
}

// nonNullList is [T!]!.
func nonNullList(t graphql.Output) *graphql.NonNull {
	return graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t)))
}

func intArgs(names ...string) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{}
	for _, name := range names {
		args[name] = &graphql.ArgumentConfig{Type: nonNull(graphql.Int)}
	}
	return args
}

// NewSchema builds the executable schema. Object types are built per call
// because their fields close over r.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	var userType, postType, commentType, connectionType, messageType *graphql.Object

	userType = graphql.NewObject(graphql.ObjectConfig{
		Name:        "User",
		Description: "A member of the network.",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":       &graphql.Field{Type: nonNull(graphql.Int)},
				"name":     &graphql.Field{Type: nonNull(graphql.String)},
				"jobTitle": &graphql.Field{Type: graphql.String},
				"skills":   &graphql.Field{Type: nonNullList(graphql.String)},
				"posts": &graphql.Field{
					Type:    nonNullList(postType),
					Resolve: r.instrument("User.posts", r.userPosts),
				},
				"connections": &graphql.Field{
					Type:    nonNullList(userType),
					Resolve: r.instrument("User.connections", r.userConnections),
				},
				"sentMessages": &graphql.Field{
					Type:    nonNullList(messageType),
					Resolve: r.instrument("User.sentMessages", r.userSentMessages),
				},
				"receivedMessages": &graphql.Field{
					Type:    nonNullList(messageType),
					Resolve: r.instrument("User.receivedMessages", r.userReceivedMessages),
				},
			}
		}),
	})

	postType = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Post",
		Description: "Content published by a user.",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":       &graphql.Field{Type: nonNull(graphql.Int)},
				"content":  &graphql.Field{Type: nonNull(graphql.String)},
				"mediaUrl": &graphql.Field{Type: graphql.String},
				"author": &graphql.Field{
					Type:    nonNull(userType),
					Resolve: r.instrument("Post.author", r.postAuthor),
				},
				"createdAt": &graphql.Field{Type: nonNull(graphql.String)},
				"comments": &graphql.Field{
					Type:    nonNullList(commentType),
					Resolve: r.instrument("Post.comments", r.postComments),
				},
			}
		}),
	})

	commentType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":      &graphql.Field{Type: nonNull(graphql.Int)},
				"content": &graphql.Field{Type: nonNull(graphql.String)},
				"post": &graphql.Field{
					Type:    nonNull(postType),
					Resolve: r.instrument("Comment.post", r.commentPost),
				},
				"author": &graphql.Field{
					Type:    nonNull(userType),
					Resolve: r.instrument("Comment.author", r.commentAuthor),
				},
				"createdAt": &graphql.Field{Type: nonNull(graphql.String)},
			}
		}),
	})

	connectionType = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Connection",
		Description: "An undirected edge between two users.",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": &graphql.Field{Type: nonNull(graphql.Int)},
				"user1": &graphql.Field{
					Type:    nonNull(userType),
					Resolve: r.instrument("Connection.user1", r.connectionUser1),
				},
				"user2": &graphql.Field{
					Type:    nonNull(userType),
					Resolve: r.instrument("Connection.user2", r.connectionUser2),
				},
			}
		}),
	})

	messageType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Message",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":      &graphql.Field{Type: nonNull(graphql.Int)},
				"content": &graphql.Field{Type: nonNull(graphql.String)},
				"sender": &graphql.Field{
					Type:    nonNull(userType),
					Resolve: r.instrument("Message.sender", r.messageSender),
				},
				"receiver": &graphql.Field{
					Type:    nonNull(userType),
					Resolve: r.instrument("Message.receiver", r.messageReceiver),
				},
				"sentAt": &graphql.Field{Type: nonNull(graphql.String)},
			}
		}),
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type:    nonNullList(userType),
				Resolve: r.instrument("Query.users", r.queryUsers),
			},
			"user": &graphql.Field{
				Type:    userType,
				Args:    intArgs("id"),
				Resolve: r.instrument("Query.user", r.queryUser),
			},
			"posts": &graphql.Field{
				Type:    nonNullList(postType),
				Resolve: r.instrument("Query.posts", r.queryPosts),
			},
			"post": &graphql.Field{
				Type:    postType,
				Args:    intArgs("id"),
				Resolve: r.instrument("Query.post", r.queryPost),
			},
			"comments": &graphql.Field{
				Type:    nonNullList(commentType),
				Resolve: r.instrument("Query.comments", r.queryComments),
			},
			"commentsByPost": &graphql.Field{
				Type:    nonNullList(commentType),
				Args:    intArgs("postId"),
				Resolve: r.instrument("Query.commentsByPost", r.queryCommentsByPost),
			},
			"connections": &graphql.Field{
				Type:    nonNullList(userType),
				Args:    intArgs("userId"),
				Resolve: r.instrument("Query.connections", r.queryConnections),
			},
			"sentMessages": &graphql.Field{
				Type:    nonNullList(messageType),
				Args:    intArgs("senderId"),
				Resolve: r.instrument("Query.sentMessages", r.querySentMessages),
			},
			"receivedMessages": &graphql.Field{
				Type:    nonNullList(messageType),
				Args:    intArgs("receiverId"),
				Resolve: r.instrument("Query.receivedMessages", r.queryReceivedMessages),
			},
			"viewer": &graphql.Field{
				Type:        userType,
				Description: "The user identified by the request credentials, or null.",
				Resolve:     r.instrument("Query.viewer", r.queryViewer),
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: nonNull(userType),
				Args: graphql.FieldConfigArgument{
					"name":     &graphql.ArgumentConfig{Type: nonNull(graphql.String)},
					"jobTitle": &graphql.ArgumentConfig{Type: graphql.String},
					"skills":   &graphql.ArgumentConfig{Type: nonNullList(graphql.String)},
				},
				Resolve: r.instrument("Mutation.createUser", r.mutationCreateUser),
			},
			"createPost": &graphql.Field{
				Type: nonNull(postType),
				Args: graphql.FieldConfigArgument{
					"content":  &graphql.ArgumentConfig{Type: nonNull(graphql.String)},
					"authorId": &graphql.ArgumentConfig{Type: nonNull(graphql.Int)},
				},
				Resolve: r.instrument("Mutation.createPost", r.mutationCreatePost),
			},
			"createComment": &graphql.Field{
				Type: nonNull(commentType),
				Args: graphql.FieldConfigArgument{
					"postId":   &graphql.ArgumentConfig{Type: nonNull(graphql.Int)},
					"authorId": &graphql.ArgumentConfig{Type: nonNull(graphql.Int)},
					"content":  &graphql.ArgumentConfig{Type: nonNull(graphql.String)},
				},
				Resolve: r.instrument("Mutation.createComment", r.mutationCreateComment),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
		// Connection is not reachable from a root field but is part of the API.
		Types: []graphql.Type{connectionType},
	})
}
